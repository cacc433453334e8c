package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records assessment session lifecycle events (start/stop).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or stop"),
		field.String("mode").
			NotEmpty().
			Comment("adaptive or fixed"),
		field.Int("items_administered").
			Default(0).
			Comment("Total items served (on stop only)"),
		field.Float("final_theta").
			Default(0).
			Comment("Final ability estimate (on stop only)"),
		field.Float("final_se").
			Default(0).
			Comment("Final standard error (on stop only)"),
		field.String("stop_reason").
			Default("").
			Comment("Stopping reason (on stop only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
