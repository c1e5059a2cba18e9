package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
)

func TestParseClothingSize(t *testing.T) {
	t.Run("accepts known sizes case-insensitively", func(t *testing.T) {
		for in, want := range map[string]ClothingSize{
			"XS": SizeXS,
			"s":  SizeS,
			"m":  SizeM,
			"L":  SizeL,
			"xl": SizeXL,
		} {
			got, err := ParseClothingSize(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects unknown sizes", func(t *testing.T) {
		for _, in := range []string{"", "XXL", "medium"} {
			_, err := ParseClothingSize(in)
			require.Error(t, err, in)
			assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
		}
	})
}

func TestFullName(t *testing.T) {
	t.Run("renders last first middle", func(t *testing.T) {
		e := Employee{FirstName: "Ivan", LastName: "Ivanov", MiddleName: "Petrovich"}
		assert.Equal(t, "Ivanov Ivan Petrovich", e.FullName())
	})

	t.Run("skips empty parts", func(t *testing.T) {
		e := Employee{FirstName: "Ivan", LastName: "Ivanov"}
		assert.Equal(t, "Ivanov Ivan", e.FullName())

		e = Employee{FirstName: "Ivan"}
		assert.Equal(t, "Ivan", e.FullName())
	})
}

func TestRegisterFor(t *testing.T) {
	t.Run("appends a registration once", func(t *testing.T) {
		e := Employee{ID: id.EmployeeID(1)}
		confID := id.ConferenceID(5)

		require.NoError(t, e.RegisterFor(confID))
		assert.True(t, e.IsRegisteredFor(confID))
		require.Len(t, e.Conferences, 1)
		assert.Equal(t, e.ID, e.Conferences[0].EmployeeID)

		err := e.RegisterFor(confID)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
		assert.Len(t, e.Conferences, 1)
	})

	t.Run("a conference id equal to the employee id is not a duplicate", func(t *testing.T) {
		e := Employee{ID: id.EmployeeID(7)}
		require.NoError(t, e.RegisterFor(id.ConferenceID(3)))

		require.NoError(t, e.RegisterFor(id.ConferenceID(7)))
		assert.True(t, e.IsRegisteredFor(id.ConferenceID(7)))
	})
}

func TestClone(t *testing.T) {
	orig := &Employee{ID: id.EmployeeID(1), FirstName: "Ivan"}
	require.NoError(t, orig.RegisterFor(id.ConferenceID(2)))

	cp := orig.Clone()
	require.NoError(t, cp.RegisterFor(id.ConferenceID(3)))

	assert.Len(t, orig.Conferences, 1, "clone mutations must not leak back")
	assert.Len(t, cp.Conferences, 2)
}
