package card

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyCatalog = errors.New("card: catalog is empty")

// UnmarshalYAML normalizes catalog spellings of the card type.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LoadCatalog reads a card list. JSON catalogs decode as YAML flow documents.
func LoadCatalog(path string) ([]*Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("card: open %q: %w", path, err)
	}
	defer f.Close()
	return DecodeCatalog(f)
}

func DecodeCatalog(r io.Reader) ([]*Card, error) {
	var cards []*Card
	if err := yaml.NewDecoder(r).Decode(&cards); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("card: decode catalog: %w", err)
	}
	if len(cards) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, c := range cards {
		if c.ID == "" {
			c.ID = fmt.Sprintf("card-%d", i+1)
		}
	}
	return cards, nil
}
