package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResponseEvent records a single administered item and its response.
// The aggregate count per item feeds exposure weighting and tie-breaks.
type ResponseEvent struct {
	ent.Schema
}

func (ResponseEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResponseEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("item_id").
			NotEmpty().
			Comment("Bank item that was administered"),
		field.Int("position").
			Comment("1-based administration position within the session"),
		field.Int("value").
			Comment("Response category index; -1 for a missing response"),
		field.Float("theta_after").
			Comment("Ability estimate after this response"),
		field.Float("se_after").
			Comment("Standard error after this response"),
	}
}

func (ResponseEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("item_id"),
	}
}
