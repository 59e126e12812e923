package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogErrorMessage(t *testing.T) {
	err := ErrDuplicateName("Builder")
	assert.Contains(t, err.Error(), "[ERR_DUPLICATE_NAME]")
	assert.Contains(t, err.Error(), "entry:Builder")
	assert.Contains(t, err.Error(), "already present")
}

func TestCatalogErrorWithField(t *testing.T) {
	err := ErrEmptyField("Builder", "summary")
	assert.Equal(t, KindEmptyField, err.Kind)
	assert.Equal(t, "summary", err.Field)
	assert.Contains(t, err.Error(), "field:summary")
}

func TestCatalogErrorIs(t *testing.T) {
	err := ErrNotFound("Observer")

	assert.True(t, errors.Is(err, ErrNotFound("anything")))
	assert.False(t, errors.Is(err, ErrDuplicateName("Observer")))
}

func TestCatalogErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := &CatalogError{
		Kind:    KindNotFound,
		Message: "wrapped",
		Cause:   cause,
	}

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "underlying")
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsDuplicateName(ErrDuplicateName("X")))
	assert.True(t, IsNotFound(ErrNotFound("X")))
	assert.True(t, IsDanglingReference(ErrDanglingReference("X", "Y")))
	assert.False(t, IsDuplicateName(ErrNotFound("X")))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
}

func TestViolationCollector(t *testing.T) {
	vc := NewViolationCollector()
	assert.False(t, vc.HasViolations())
	assert.Equal(t, 0, vc.Count())

	vc.Add("patterns[0]", ErrEmptyField("", "name"))
	vc.Add("patterns[2] (Builder)", ErrDuplicateName("Builder"))
	vc.Add("ignored", nil)

	assert.True(t, vc.HasViolations())
	assert.Equal(t, 2, vc.Count())

	violations := vc.Violations()
	assert.Len(t, violations, 2)
	assert.Equal(t, "patterns[0]", violations[0].Location)
	assert.Contains(t, violations[1].String(), "Builder")

	duplicates := vc.ByKind(KindDuplicateName)
	assert.Len(t, duplicates, 1)

	vc.Clear()
	assert.False(t, vc.HasViolations())
}

func TestViolationString(t *testing.T) {
	v := Violation{Err: ErrNotFound("Builder")}
	assert.Equal(t, v.Err.Error(), v.String())

	v.Location = "patterns[3]"
	assert.Contains(t, v.String(), "patterns[3]: ")
}
