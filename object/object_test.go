package object

import (
	"testing"

	"objmap/data"
)

func assertEqual(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
}

var userSchema = &Schema{
	Table:    "users",
	TypeName: "User",
	Columns: []Column{
		{Name: "name", Attr: "Name", SQLType: "TEXT", Type: data.TypeString},
		{Name: "age", Attr: "Age", SQLType: "INTEGER", Type: data.TypeInt64},
		{Name: "rating", Attr: "Rating", SQLType: "REAL", Type: data.TypeFloat64},
	},
}

var emptySchema = &Schema{
	Table:    "markers",
	TypeName: "Marker",
}

func TestSelectText(t *testing.T) {
	t.Run("with columns", func(t *testing.T) {
		assertEqual(t, "SELECT name, age, rating FROM users WHERE id = ?", userSchema.SelectText())
	})

	t.Run("without columns selects constant", func(t *testing.T) {
		assertEqual(t, "SELECT 1 FROM markers WHERE id = ?", emptySchema.SelectText())
	})
}

func TestInsertText(t *testing.T) {
	t.Run("with columns", func(t *testing.T) {
		assertEqual(t, "INSERT INTO users (name, age, rating) VALUES (?, ?, ?)", userSchema.InsertText())
	})

	t.Run("without columns uses default values", func(t *testing.T) {
		assertEqual(t, "INSERT INTO markers DEFAULT VALUES", emptySchema.InsertText())
	})
}

func TestUpdateText(t *testing.T) {
	assertEqual(t, "UPDATE users SET name = ?, age = ?, rating = ? WHERE id = ?", userSchema.UpdateText())
}

func TestDeleteText(t *testing.T) {
	assertEqual(t, "DELETE FROM users WHERE id = ?", userSchema.DeleteText())
}

func TestCreateText(t *testing.T) {
	t.Run("with columns", func(t *testing.T) {
		assertEqual(t,
			"CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, age INTEGER, rating REAL)",
			userSchema.CreateText())
	})

	t.Run("without columns keeps the id column", func(t *testing.T) {
		assertEqual(t, "CREATE TABLE markers (id INTEGER PRIMARY KEY AUTOINCREMENT)", emptySchema.CreateText())
	})
}

// Statement rendering is a pure function of the schema; repeated calls
// must produce identical text so callers may cache it.
func TestTextGenerationIsStable(t *testing.T) {
	assertEqual(t, userSchema.SelectText(), userSchema.SelectText())
	assertEqual(t, userSchema.InsertText(), userSchema.InsertText())
	assertEqual(t, userSchema.UpdateText(), userSchema.UpdateText())
	assertEqual(t, userSchema.DeleteText(), userSchema.DeleteText())
	assertEqual(t, userSchema.CreateText(), userSchema.CreateText())
}
