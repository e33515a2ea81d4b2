package objmap

// Test record types, written the way objmap-gen emits them.

import (
	"objmap/data"
	"objmap/object"
)

type user struct {
	Name   string
	Age    int64
	Rating float64
	Active bool
	Avatar []byte
}

var userSchema = &object.Schema{
	Table:    "users",
	TypeName: "user",
	Columns: []object.Column{
		{Name: "name", Attr: "Name", SQLType: "TEXT", Type: data.TypeString},
		{Name: "age", Attr: "Age", SQLType: "INTEGER", Type: data.TypeInt64},
		{Name: "rating", Attr: "Rating", SQLType: "REAL", Type: data.TypeFloat64},
		{Name: "active", Attr: "Active", SQLType: "INTEGER", Type: data.TypeBool},
		{Name: "avatar", Attr: "Avatar", SQLType: "BLOB", Type: data.TypeBytes},
	},
}

func (o *user) Schema() *object.Schema { return userSchema }

func (o *user) Serialize() data.Row {
	return data.Row{
		data.StringValue(o.Name),
		data.Int64Value(o.Age),
		data.Float64Value(o.Rating),
		data.BoolValue(o.Active),
		data.BytesValue(o.Avatar),
	}
}

func (o *user) Deserialize(row data.Row) {
	if len(row) != len(userSchema.Columns) {
		panic("objmap: row length does not match user schema")
	}
	o.Name = row[0].AsString()
	o.Age = row[1].AsInt64()
	o.Rating = row[2].AsFloat64()
	o.Active = row[3].AsBool()
	o.Avatar = row[4].AsBytes()
}

// marker has no mapped columns; only row identity exists.
type marker struct{}

var markerSchema = &object.Schema{
	Table:    "markers",
	TypeName: "marker",
}

func (o *marker) Schema() *object.Schema { return markerSchema }

func (o *marker) Serialize() data.Row { return data.Row{} }

func (o *marker) Deserialize(row data.Row) {
	if len(row) != 0 {
		panic("objmap: row length does not match marker schema")
	}
}
