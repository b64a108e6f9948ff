package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

const draftPrefix = "draft:"

// Drafts persists in-progress form snapshots under "draft:<form>".
type Drafts struct {
	kv KeyValue
}

func NewDrafts(kv KeyValue) *Drafts {
	if kv == nil {
		kv = Unavailable{}
	}
	return &Drafts{kv: kv}
}

// Save serializes v as the snapshot for form. Without storage it is a no-op.
func (d *Drafts) Save(form string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("draft %s: encode: %w", form, err)
	}
	if err := d.kv.Set(draftPrefix+form, data); err != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("draft %s: %w", form, err)
	}
	return nil
}

// Load decodes the snapshot for form into v. It reports false when there is
// no snapshot (or no storage).
func (d *Drafts) Load(form string, v any) (bool, error) {
	data, err := d.kv.Get(draftPrefix + form)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("draft %s: %w", form, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("draft %s: decode: %w", form, err)
	}
	return true, nil
}

// Discard removes the snapshot for form.
func (d *Drafts) Discard(form string) error {
	if err := d.kv.Delete(draftPrefix + form); err != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("draft %s: %w", form, err)
	}
	return nil
}
