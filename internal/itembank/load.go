package itembank

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Marshal then unmarshal to get a clean
		// representation.
		b, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://item-bank.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// bankFile is the decoded form of an item bank definition.
type bankFile struct {
	Model string         `json:"model"`
	Items []bankFileItem `json:"items"`
}

type bankFileItem struct {
	ID         string     `json:"id"`
	A          *float64   `json:"a"`
	B          *float64   `json:"b"`
	C          *float64   `json:"c"`
	Thresholds []*float64 `json:"thresholds"`
	Domain     string     `json:"domain"`
	Text       string     `json:"text"`
}

// Load reads and validates a JSON item bank definition. Structural
// problems and parameter-invariant violations are reported as a
// *SchemaError; the returned Bank is immutable.
func Load(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read item bank: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &SchemaError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &SchemaError{Problems: []string{err.Error()}}
	}

	var file bankFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &SchemaError{Problems: []string{fmt.Sprintf("decode item bank: %v", err)}}
	}

	items, problems := file.toItems()
	if len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}
	return New(items)
}

// LoadFile reads an item bank definition from a file on disk.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item bank: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// toItems converts decoded entries to Items, checking that each entry
// carries the fields its declared model requires. Value-level invariants
// are re-checked by New.
func (f *bankFile) toItems() ([]Item, []string) {
	var problems []string
	items := make([]Item, 0, len(f.Items))

	for _, e := range f.Items {
		var model Model
		switch f.Model {
		case "1PL":
			model = Rasch{Difficulty: e.B}
		case "2PL":
			model = TwoParam{Discrimination: e.A, Difficulty: e.B}
		case "3PL":
			guessing := 0.0
			if e.C != nil {
				guessing = *e.C
			}
			model = ThreeParam{Discrimination: e.A, Difficulty: e.B, Guessing: guessing}
		case "GRM":
			if len(e.Thresholds) == 0 {
				problems = append(problems, fmt.Sprintf("item %q: graded model requires a thresholds column", e.ID))
				continue
			}
			model = Graded{Discrimination: e.A, Thresholds: e.Thresholds}
		default:
			// Unreachable after schema validation; kept as a guard.
			problems = append(problems, fmt.Sprintf("unknown model %q", f.Model))
			continue
		}

		if f.Model != "GRM" && len(e.Thresholds) > 0 {
			problems = append(problems, fmt.Sprintf("item %q: thresholds are only valid for the graded model", e.ID))
			continue
		}

		items = append(items, Item{
			ID:     e.ID,
			Model:  model,
			Domain: e.Domain,
			Text:   e.Text,
		})
	}

	return items, problems
}
