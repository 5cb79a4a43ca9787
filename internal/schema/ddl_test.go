package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"indexConfig/internal/model"
)

func integration(name string, table model.ResolvedTable) model.ResolvedIntegration {
	return model.ResolvedIntegration{Name: name, Table: table}
}

func TestTableDDLWithSchema(t *testing.T) {
	table := model.ResolvedTable{
		Name:   "test_table",
		Schema: model.Some("test_schema"),
		Columns: []model.Column{
			{Name: "id", Type: "integer"},
			{Name: "name", Type: "text"},
		},
		Index: [][]string{{"id"}},
	}

	assert.Equal(t, "test_schema.test_table", table.QualifiedName())
	assert.Equal(t, []string{
		"create schema if not exists test_schema",
		"create table if not exists test_schema.test_table(id integer, name text)",
		"create index if not exists shovel_id on test_schema.test_table (id)",
	}, TableDDL(table))
}

func TestTableDDLWithoutSchema(t *testing.T) {
	table := model.ResolvedTable{
		Name:    "test_table",
		Columns: []model.Column{{Name: "id", Type: "integer"}},
	}
	assert.Equal(t, "test_table", table.QualifiedName())
	assert.Equal(t, []string{"create table if not exists test_table(id integer)"}, TableDDL(table))
}

func TestTableDDLQuotesReservedWords(t *testing.T) {
	table := model.ResolvedTable{
		Name: "transfers",
		Columns: []model.Column{
			{Name: "from", Type: "bytea"},
			{Name: "to", Type: "bytea"},
			{Name: "value", Type: "numeric"},
		},
		Index: [][]string{{"from desc"}, {"to", "value"}},
	}
	assert.Equal(t, []string{
		`create table if not exists transfers("from" bytea, "to" bytea, value numeric)`,
		`create index if not exists shovel_from_desc on transfers ("from" desc)`,
		`create index if not exists shovel_to_value on transfers ("to", value)`,
	}, TableDDL(table))
}

func TestTableDDLNoColumns(t *testing.T) {
	assert.Nil(t, TableDDL(model.ResolvedTable{Name: "empty"}))
}

func TestDDLUnionsTablesBySchema(t *testing.T) {
	cfg := model.ResolvedConfig{
		Integrations: []model.ResolvedIntegration{
			integration("test1", model.ResolvedTable{
				Name:    "events",
				Schema:  model.Some("custom"),
				Columns: []model.Column{{Name: "id", Type: "integer"}, {Name: "data", Type: "text"}},
				Index:   [][]string{},
			}),
			integration("test2", model.ResolvedTable{
				Name:    "events",
				Schema:  model.Some("custom"),
				Columns: []model.Column{{Name: "id", Type: "integer"}, {Name: "extra", Type: "bytea"}},
				Index:   [][]string{},
			}),
			integration("test3", model.ResolvedTable{
				Name:    "events",
				Columns: []model.Column{{Name: "id", Type: "integer"}, {Name: "value", Type: "numeric"}},
				Index:   [][]string{},
			}),
		},
	}

	assert.Equal(t, []string{
		"create schema if not exists custom",
		"create table if not exists custom.events(id integer, data text, extra bytea)",
		"create table if not exists events(id integer, value numeric)",
	}, DDL(cfg))
}

func TestDDLSeparatesSchemasAndDedupesSchemaStatements(t *testing.T) {
	cfg := model.ResolvedConfig{
		Integrations: []model.ResolvedIntegration{
			integration("a", model.ResolvedTable{
				Name: "events", Schema: model.Some("schema1"),
				Columns: []model.Column{{Name: "id", Type: "integer"}},
			}),
			integration("b", model.ResolvedTable{
				Name: "events", Schema: model.Some("schema2"),
				Columns: []model.Column{{Name: "id", Type: "integer"}},
			}),
			integration("c", model.ResolvedTable{
				Name: "other", Schema: model.Some("schema1"),
				Columns: []model.Column{{Name: "id", Type: "integer"}},
			}),
		},
	}

	assert.Equal(t, []string{
		"create schema if not exists schema1",
		"create table if not exists schema1.events(id integer)",
		"create schema if not exists schema2",
		"create table if not exists schema2.events(id integer)",
		"create table if not exists schema1.other(id integer)",
	}, DDL(cfg))
}

func TestTablesMergesIndexes(t *testing.T) {
	cfg := model.ResolvedConfig{
		Integrations: []model.ResolvedIntegration{
			integration("a", model.ResolvedTable{
				Name: "t", Columns: []model.Column{{Name: "a", Type: "int"}},
				Index: [][]string{{"a"}},
			}),
			integration("b", model.ResolvedTable{
				Name: "t", Columns: []model.Column{{Name: "b", Type: "int"}},
				Index: [][]string{{"a"}, {"b desc"}},
			}),
		},
	}

	tables := Tables(cfg)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, [][]string{{"a"}, {"b desc"}}, tables[0].Index)
		assert.Equal(t, []model.Column{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}, tables[0].Columns)
	}
}

func TestTableDDLUnique(t *testing.T) {
	table := model.ResolvedTable{
		Name: "transfers",
		Columns: []model.Column{
			{Name: "tx_hash", Type: "bytea"},
			{Name: "log_idx", Type: "int"},
			{Name: "from", Type: "bytea"},
		},
		Unique: model.Some([][]string{{"tx_hash", "log_idx"}, {"from"}}),
		Index:  [][]string{{"from desc"}},
	}
	assert.Equal(t, []string{
		`create table if not exists transfers(tx_hash bytea, log_idx int, "from" bytea)`,
		`create unique index if not exists u_transfers_tx_hash_log_idx on transfers (tx_hash, log_idx)`,
		`create unique index if not exists u_transfers_from on transfers ("from")`,
		`create index if not exists shovel_from_desc on transfers ("from" desc)`,
	}, TableDDL(table))

	table.DisableUnique = true
	assert.Equal(t, []string{
		`create table if not exists transfers(tx_hash bytea, log_idx int, "from" bytea)`,
		`create index if not exists shovel_from_desc on transfers ("from" desc)`,
	}, TableDDL(table))
}

func TestTablesMergesUnique(t *testing.T) {
	cfg := model.ResolvedConfig{
		Integrations: []model.ResolvedIntegration{
			integration("a", model.ResolvedTable{
				Name: "t", Columns: []model.Column{{Name: "a", Type: "int"}},
			}),
			integration("b", model.ResolvedTable{
				Name: "t", Columns: []model.Column{{Name: "a", Type: "int"}},
				Unique: model.Some([][]string{{"a"}}),
			}),
			integration("c", model.ResolvedTable{
				Name: "t", Columns: []model.Column{{Name: "a", Type: "int"}},
				Unique:        model.Some([][]string{{"a"}}),
				DisableUnique: true,
			}),
		},
	}

	tables := Tables(cfg)
	if assert.Len(t, tables, 1) {
		unique, ok := tables[0].Unique.Get()
		assert.True(t, ok)
		assert.Equal(t, [][]string{{"a"}}, unique)
		assert.True(t, tables[0].DisableUnique)
	}
}
