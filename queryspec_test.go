package sqlcraft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlcraft"
)

func TestFromJSONSelect(t *testing.T) {
	t.Parallel()

	spec := []byte(`{
		"select": {"table": "user", "alias": "u", "columns": ["u.id", "u.first_name"]},
		"joins": [{"kind": "left", "table": "order", "alias": "o", "on": [["o.user_id", "=", "u.id"]]}],
		"where": [["u.active", "=", true], {"or": [["u.role", "=", "?"], ["u.role", "=", "?"]]}],
		"group": ["u.id"],
		"order": [{"column": "u.first_name", "dir": "desc"}],
		"limit": 10,
		"offset": 20,
		"params": ["admin", "owner"]
	}`)

	b, err := sqlcraft.FromJSON(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `u`.`id`, `u`.`first_name` FROM `user` AS `u` "+
			"LEFT JOIN `order` AS `o` ON `o`.`user_id` = `u`.`id` "+
			"WHERE `u`.`active` = 1 AND (`u`.`role` = 'admin' OR `u`.`role` = 'owner') "+
			"GROUP BY `u`.`id` ORDER BY `u`.`first_name` DESC LIMIT 20, 10",
		sql)
}

func TestFromJSONInsert(t *testing.T) {
	t.Parallel()

	spec := []byte(`{
		"insert": {"table": "user", "rows": [{"first_name": "Jane", "age": 30}]},
		"on_duplicate_key_update": "age = VALUES(age)"
	}`)

	b, err := sqlcraft.FromJSON(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO `user` (`age`, `first_name`) VALUES (30, 'Jane') "+
			"ON DUPLICATE KEY UPDATE age = VALUES(age)",
		sql)
}

func TestFromJSONDelete(t *testing.T) {
	t.Parallel()

	spec := []byte(`{
		"delete": {"table": "user"},
		"where": [["user.id", "in", [1, 2]]],
		"limit": 2
	}`)

	b, err := sqlcraft.FromJSON(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `user` WHERE `user`.`id` IN ('1', '2') LIMIT 2", sql)
}

func TestFromJSONSkipsUnrecognizedShapes(t *testing.T) {
	t.Parallel()

	// A two-element array, a multi-key object and a bare number are not
	// conditions; they are skipped without error.
	spec := []byte(`{
		"select": {"table": "user", "columns": ["user.id"]},
		"where": [
			["only", "two"],
			{"and": [["user.a", "=", 1]], "or": [["user.b", "=", 2]]},
			42,
			["user.active", "=", true]
		]
	}`)

	b, err := sqlcraft.FromJSON(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `user`.`id` FROM `user` WHERE `user`.`active` = 1", sql)
}

func TestFromJSONStatementCount(t *testing.T) {
	t.Parallel()

	for name, spec := range map[string]string{
		"none": `{}`,
		"two":  `{"select": {"table": "a", "columns": ["x"]}, "delete": {"table": "b"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sqlcraft.FromJSON([]byte(spec))
			require.Error(t, err)
			assert.True(t, sqlcraft.IsConfig(err))
			assert.Contains(t, err.Error(), "exactly one of select/insert/update/delete")
		})
	}
}

func TestFromJSONParamsShape(t *testing.T) {
	t.Parallel()

	_, err := sqlcraft.FromJSON([]byte(`{
		"select": {"table": "user", "columns": ["user.id"]},
		"params": "bogus"
	}`))
	require.Error(t, err)
	assert.True(t, sqlcraft.IsConfig(err))
}

func TestFromJSONNamedParams(t *testing.T) {
	t.Parallel()

	spec := []byte(`{
		"select": {"table": "user", "columns": ["user.id"]},
		"where": [["user.first_name", "=", "?:first"]],
		"params": {"first": "John"}
	}`)

	b, err := sqlcraft.FromJSON(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `user`.`id` FROM `user` WHERE `user`.`first_name` = 'John'", sql)
}

func TestFromYAMLUpdate(t *testing.T) {
	t.Parallel()

	spec := []byte(`
update:
  table: user
  set:
    first_name: "?:first"
where:
  - ["user.id", "=", 7]
params:
  first: John
`)

	b, err := sqlcraft.FromYAML(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `user` SET `first_name` = 'John' WHERE `user`.`id` = 7", sql)
}

func TestFromYAMLRawFragment(t *testing.T) {
	t.Parallel()

	spec := []byte(`
select:
  table: user
  columns: ["user.id"]
where:
  - ["user.active", "=", true]
  - "YEAR(user.created_at) = 2024"
`)

	b, err := sqlcraft.FromYAML(spec)
	require.NoError(t, err)
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `user`.`id` FROM `user` WHERE `user`.`active` = 1 AND YEAR(user.created_at) = 2024",
		sql)
}

func TestFromJSONMalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := sqlcraft.FromJSON([]byte(`{`))
	require.Error(t, err)
	_, err = sqlcraft.FromYAML([]byte("\t:"))
	require.Error(t, err)
}
