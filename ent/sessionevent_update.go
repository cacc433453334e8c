// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/selvastics/inrep-sub013/ent/predicate"
	"github.com/selvastics/inrep-sub013/ent/sessionevent"
)

// SessionEventUpdate is the builder for updating SessionEvent entities.
type SessionEventUpdate struct {
	config
	hooks    []Hook
	mutation *SessionEventMutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdate) Where(ps ...predicate.SessionEvent) *SessionEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdate) SetSessionID(v string) *SessionEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableSessionID(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *SessionEventUpdate) SetAction(v string) *SessionEventUpdate {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableAction(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetMode sets the "mode" field.
func (_u *SessionEventUpdate) SetMode(v string) *SessionEventUpdate {
	_u.mutation.SetMode(v)
	return _u
}

// SetNillableMode sets the "mode" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableMode(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetMode(*v)
	}
	return _u
}

// SetItemsAdministered sets the "items_administered" field.
func (_u *SessionEventUpdate) SetItemsAdministered(v int) *SessionEventUpdate {
	_u.mutation.ResetItemsAdministered()
	_u.mutation.SetItemsAdministered(v)
	return _u
}

// SetNillableItemsAdministered sets the "items_administered" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableItemsAdministered(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetItemsAdministered(*v)
	}
	return _u
}

// AddItemsAdministered adds value to the "items_administered" field.
func (_u *SessionEventUpdate) AddItemsAdministered(v int) *SessionEventUpdate {
	_u.mutation.AddItemsAdministered(v)
	return _u
}

// SetFinalTheta sets the "final_theta" field.
func (_u *SessionEventUpdate) SetFinalTheta(v float64) *SessionEventUpdate {
	_u.mutation.ResetFinalTheta()
	_u.mutation.SetFinalTheta(v)
	return _u
}

// SetNillableFinalTheta sets the "final_theta" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableFinalTheta(v *float64) *SessionEventUpdate {
	if v != nil {
		_u.SetFinalTheta(*v)
	}
	return _u
}

// AddFinalTheta adds value to the "final_theta" field.
func (_u *SessionEventUpdate) AddFinalTheta(v float64) *SessionEventUpdate {
	_u.mutation.AddFinalTheta(v)
	return _u
}

// SetFinalSe sets the "final_se" field.
func (_u *SessionEventUpdate) SetFinalSe(v float64) *SessionEventUpdate {
	_u.mutation.ResetFinalSe()
	_u.mutation.SetFinalSe(v)
	return _u
}

// SetNillableFinalSe sets the "final_se" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableFinalSe(v *float64) *SessionEventUpdate {
	if v != nil {
		_u.SetFinalSe(*v)
	}
	return _u
}

// AddFinalSe adds value to the "final_se" field.
func (_u *SessionEventUpdate) AddFinalSe(v float64) *SessionEventUpdate {
	_u.mutation.AddFinalSe(v)
	return _u
}

// SetStopReason sets the "stop_reason" field.
func (_u *SessionEventUpdate) SetStopReason(v string) *SessionEventUpdate {
	_u.mutation.SetStopReason(v)
	return _u
}

// SetNillableStopReason sets the "stop_reason" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableStopReason(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetStopReason(*v)
	}
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdate) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SessionEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SessionEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := sessionevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.action": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Mode(); ok {
		if err := sessionevent.ModeValidator(v); err != nil {
			return &ValidationError{Name: "mode", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.mode": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(sessionevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Mode(); ok {
		_spec.SetField(sessionevent.FieldMode, field.TypeString, value)
	}
	if value, ok := _u.mutation.ItemsAdministered(); ok {
		_spec.SetField(sessionevent.FieldItemsAdministered, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedItemsAdministered(); ok {
		_spec.AddField(sessionevent.FieldItemsAdministered, field.TypeInt, value)
	}
	if value, ok := _u.mutation.FinalTheta(); ok {
		_spec.SetField(sessionevent.FieldFinalTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedFinalTheta(); ok {
		_spec.AddField(sessionevent.FieldFinalTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.FinalSe(); ok {
		_spec.SetField(sessionevent.FieldFinalSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedFinalSe(); ok {
		_spec.AddField(sessionevent.FieldFinalSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.StopReason(); ok {
		_spec.SetField(sessionevent.FieldStopReason, field.TypeString, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SessionEventUpdateOne is the builder for updating a single SessionEvent entity.
type SessionEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SessionEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdateOne) SetSessionID(v string) *SessionEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableSessionID(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *SessionEventUpdateOne) SetAction(v string) *SessionEventUpdateOne {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableAction(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetMode sets the "mode" field.
func (_u *SessionEventUpdateOne) SetMode(v string) *SessionEventUpdateOne {
	_u.mutation.SetMode(v)
	return _u
}

// SetNillableMode sets the "mode" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableMode(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetMode(*v)
	}
	return _u
}

// SetItemsAdministered sets the "items_administered" field.
func (_u *SessionEventUpdateOne) SetItemsAdministered(v int) *SessionEventUpdateOne {
	_u.mutation.ResetItemsAdministered()
	_u.mutation.SetItemsAdministered(v)
	return _u
}

// SetNillableItemsAdministered sets the "items_administered" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableItemsAdministered(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetItemsAdministered(*v)
	}
	return _u
}

// AddItemsAdministered adds value to the "items_administered" field.
func (_u *SessionEventUpdateOne) AddItemsAdministered(v int) *SessionEventUpdateOne {
	_u.mutation.AddItemsAdministered(v)
	return _u
}

// SetFinalTheta sets the "final_theta" field.
func (_u *SessionEventUpdateOne) SetFinalTheta(v float64) *SessionEventUpdateOne {
	_u.mutation.ResetFinalTheta()
	_u.mutation.SetFinalTheta(v)
	return _u
}

// SetNillableFinalTheta sets the "final_theta" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableFinalTheta(v *float64) *SessionEventUpdateOne {
	if v != nil {
		_u.SetFinalTheta(*v)
	}
	return _u
}

// AddFinalTheta adds value to the "final_theta" field.
func (_u *SessionEventUpdateOne) AddFinalTheta(v float64) *SessionEventUpdateOne {
	_u.mutation.AddFinalTheta(v)
	return _u
}

// SetFinalSe sets the "final_se" field.
func (_u *SessionEventUpdateOne) SetFinalSe(v float64) *SessionEventUpdateOne {
	_u.mutation.ResetFinalSe()
	_u.mutation.SetFinalSe(v)
	return _u
}

// SetNillableFinalSe sets the "final_se" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableFinalSe(v *float64) *SessionEventUpdateOne {
	if v != nil {
		_u.SetFinalSe(*v)
	}
	return _u
}

// AddFinalSe adds value to the "final_se" field.
func (_u *SessionEventUpdateOne) AddFinalSe(v float64) *SessionEventUpdateOne {
	_u.mutation.AddFinalSe(v)
	return _u
}

// SetStopReason sets the "stop_reason" field.
func (_u *SessionEventUpdateOne) SetStopReason(v string) *SessionEventUpdateOne {
	_u.mutation.SetStopReason(v)
	return _u
}

// SetNillableStopReason sets the "stop_reason" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableStopReason(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetStopReason(*v)
	}
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdateOne) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdateOne) Where(ps ...predicate.SessionEvent) *SessionEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SessionEventUpdateOne) Select(field string, fields ...string) *SessionEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SessionEvent entity.
func (_u *SessionEventUpdateOne) Save(ctx context.Context) (*SessionEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdateOne) SaveX(ctx context.Context) *SessionEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SessionEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := sessionevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.action": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Mode(); ok {
		if err := sessionevent.ModeValidator(v); err != nil {
			return &ValidationError{Name: "mode", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.mode": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdateOne) sqlSave(ctx context.Context) (_node *SessionEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SessionEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, sessionevent.FieldID)
		for _, f := range fields {
			if !sessionevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != sessionevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(sessionevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Mode(); ok {
		_spec.SetField(sessionevent.FieldMode, field.TypeString, value)
	}
	if value, ok := _u.mutation.ItemsAdministered(); ok {
		_spec.SetField(sessionevent.FieldItemsAdministered, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedItemsAdministered(); ok {
		_spec.AddField(sessionevent.FieldItemsAdministered, field.TypeInt, value)
	}
	if value, ok := _u.mutation.FinalTheta(); ok {
		_spec.SetField(sessionevent.FieldFinalTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedFinalTheta(); ok {
		_spec.AddField(sessionevent.FieldFinalTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.FinalSe(); ok {
		_spec.SetField(sessionevent.FieldFinalSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedFinalSe(); ok {
		_spec.AddField(sessionevent.FieldFinalSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.StopReason(); ok {
		_spec.SetField(sessionevent.FieldStopReason, field.TypeString, value)
	}
	_node = &SessionEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
