package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Catalog translates user-visible strings. Messages without a translation,
// and every message looked up through a nil *Catalog, come back unchanged.
type Catalog struct {
	Language string
	messages map[string]string
}

type catalogFile struct {
	Language string            `toml:"language"`
	Messages map[string]string `toml:"messages"`
}

// Load reads a TOML catalog:
//
//	language = "fr"
//
//	[messages]
//	"Resume" = "Reprendre"
//	"Event: %s" = "Événement : %s"
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &Catalog{Language: f.Language, messages: f.Messages}, nil
}

// GetString returns the translation of msg.
func (c *Catalog) GetString(msg string) string {
	if c == nil {
		return msg
	}
	if t, ok := c.messages[msg]; ok && t != "" {
		return t
	}
	return msg
}

// GetStringf translates format and then formats it with args.
func (c *Catalog) GetStringf(format string, args ...any) string {
	return fmt.Sprintf(c.GetString(format), args...)
}

// Len reports how many messages are translated.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}

// Marshal writes the catalog back out, for exporting a template of the
// strings a build uses.
func (c *Catalog) Marshal() ([]byte, error) {
	f := catalogFile{Messages: map[string]string{}}
	if c != nil {
		f.Language = c.Language
		for k, v := range c.messages {
			f.Messages[k] = v
		}
	}
	return toml.Marshal(f)
}
