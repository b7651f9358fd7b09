package commands

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ItemInput is the argument of tambah and hapus.
type ItemInput struct {
	Item string `json:"item" jsonschema:"minLength=1,maxLength=100" jsonschema_description:"Nama item"`
}

// StockInput is the argument of deposit and withdraw.
type StockInput struct {
	Item     string `json:"item" jsonschema:"minLength=1,maxLength=100" jsonschema_description:"Pilih item"`
	Quantity int64  `json:"quantity" jsonschema:"minimum=1" jsonschema_description:"Jumlah item"`
}

// NoInput is the argument of commands that take none.
type NoInput struct{}

// ItemProperty is the argument that carries an item name.
const ItemProperty = "item"

var (
	ItemInputSchema  = GenerateSchema[ItemInput]()
	StockInputSchema = GenerateSchema[StockInput]()
	NoInputSchema    = GenerateSchema[NoInput]()
)

// GenerateSchema derives an inline JSON Schema from T.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// WithChoices returns a copy of schema whose property prop is restricted to
// choices. The input schema is left untouched so it can be reused for every
// declaration.
func WithChoices(schema *jsonschema.Schema, prop string, choices []string) *jsonschema.Schema {
	if schema == nil || schema.Properties == nil {
		return schema
	}
	cp := *schema
	cp.Properties = orderedmap.New[string, *jsonschema.Schema]()
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		v := pair.Value
		if pair.Key == prop {
			restricted := *v
			restricted.Enum = make([]any, 0, len(choices))
			for _, c := range choices {
				restricted.Enum = append(restricted.Enum, c)
			}
			v = &restricted
		}
		cp.Properties.Set(pair.Key, v)
	}
	return &cp
}
