package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/cagmock/cagmock/internal/id"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

//go:embed seed.schema.json
var seedSchemaJSON []byte

// Errors returned while loading a seed document.
var (
	ErrSeedNotFound = errors.New("seed file not found")
	ErrEmptySeed    = errors.New("seed file is empty")
	ErrInvalidSeed  = errors.New("invalid seed document")
)

// SeedFormat is the encoding of a seed document.
type SeedFormat string

// Seed formats.
const (
	SeedYAML SeedFormat = "yaml"
	SeedJSON SeedFormat = "json"
)

// FormatForPath picks the seed format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatForPath(path string) SeedFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SeedYAML
	default:
		return SeedJSON
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func seedSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("seed.schema.json", bytes.NewReader(seedSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add seed schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("seed.schema.json")
	})
	return schema, schemaErr
}

// DefaultSeedYAML returns the embedded default seed document.
func DefaultSeedYAML() []byte {
	return bytes.Clone(defaultSeedYAML)
}

// DefaultSeed parses the embedded seed. It panics if the embedded document is
// broken, which the package tests rule out.
func DefaultSeed() *Dataset {
	d, err := ParseSeed(defaultSeedYAML, SeedYAML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded seed is invalid: %v", err))
	}
	return d
}

// LoadSeedFile reads and validates a seed document from path.
func LoadSeedFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSeedNotFound, path)
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeed, path)
	}

	d, err := ParseSeed(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseSeed decodes a seed document, checks it against the seed JSON Schema
// and then against the relational invariants.
func ParseSeed(data []byte, format SeedFormat) (*Dataset, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	sch, err := seedSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return &d, nil
}

func toJSON(data []byte, format SeedFormat) ([]byte, error) {
	if format != SeedYAML {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSeed)
		}
		return data, nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return raw, nil
}

// MarshalSeed encodes d in the given format.
func MarshalSeed(d *Dataset, format SeedFormat) ([]byte, error) {
	if format == SeedYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.MarshalIndent(d, "", "  ")
}

// Validate checks the relational invariants of d: internal keys are UUIDs,
// keys are unique and every foreign key resolves. All violations are reported.
func (d *Dataset) Validate() error {
	var errs []error
	fail := func(collection string, i int, format string, args ...any) {
		errs = append(errs, &SeedError{Collection: collection, Index: i, Message: fmt.Sprintf(format, args...)})
	}

	clients := make(map[string]bool, len(d.Clients))
	for i, c := range d.Clients {
		if !id.IsUUID(c.ClientID) {
			fail("clients", i, "clientId %q is not a UUID", c.ClientID)
		}
		if clients[c.ClientID] {
			fail("clients", i, "duplicate clientId %q", c.ClientID)
		}
		clients[c.ClientID] = true
	}

	contracts := make(map[string]bool, len(d.Contracts))
	for i, c := range d.Contracts {
		if !id.IsUUID(c.ContractInternalID) {
			fail("contracts", i, "contractInternalId %q is not a UUID", c.ContractInternalID)
		}
		if contracts[c.ContractInternalID] {
			fail("contracts", i, "duplicate contractInternalId %q", c.ContractInternalID)
		}
		contracts[c.ContractInternalID] = true
		if !clients[c.ClientID] {
			fail("contracts", i, "clientId %q does not reference a client", c.ClientID)
		}
	}

	units := make(map[string]bool, len(d.OperationUnits))
	unitIDs := make(map[string]bool, len(d.OperationUnits))
	for i, ou := range d.OperationUnits {
		if !id.IsUUID(ou.OperationUnitInternalID) {
			fail("operationUnits", i, "operationUnitInternalId %q is not a UUID", ou.OperationUnitInternalID)
		}
		if units[ou.OperationUnitInternalID] {
			fail("operationUnits", i, "duplicate operationUnitInternalId %q", ou.OperationUnitInternalID)
		}
		units[ou.OperationUnitInternalID] = true
		unitIDs[ou.OperationUnitID] = true
		if !contracts[ou.ContractInternalID] {
			fail("operationUnits", i, "contractInternalId %q does not reference a contract", ou.ContractInternalID)
		}
	}

	assignments := make(map[string]bool, len(d.AssignedCAGs))
	for i, a := range d.AssignedCAGs {
		if assignments[a.OuCagID] {
			fail("assignedCAGs", i, "duplicate ouCagId %q", a.OuCagID)
		}
		assignments[a.OuCagID] = true
		if !units[a.OperationUnitInternalID] && !unitIDs[a.OperationUnitID] {
			fail("assignedCAGs", i, "%q does not reference an operation unit", a.OuCagID)
		}
	}

	mappings := make(map[string]bool, len(d.CAGMappings))
	for i, m := range d.CAGMappings {
		if mappings[m.CagID] {
			fail("cagMappings", i, "duplicate cagId %q", m.CagID)
		}
		mappings[m.CagID] = true
	}

	return errors.Join(errs...)
}
