package optional

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/matryer/is"
)

type modem struct {
	price *int
}

type person struct {
	name string
}

func (p person) Name() Optional[string] {
	return OfNullable(p.name)
}

func TestOf(t *testing.T) {
	is := is.New(t)

	opt, err := Of("ingduk2")
	is.NoErr(err)
	is.True(opt.IsPresent())

	value, err := opt.Get()
	is.NoErr(err)
	is.Equal(value, "ingduk2")
}

func TestOf_Nil(t *testing.T) {
	tests := []struct {
		of func() error
	}{
		{of: func() error { _, err := Of[*int](nil); return err }},
		{of: func() error { _, err := Of[any](nil); return err }},
		{of: func() error { _, err := Of[[]string](nil); return err }},
		{of: func() error { _, err := Of[map[string]int](nil); return err }},
		{of: func() error { _, err := Of[func()](nil); return err }},
		{of: func() error { _, err := Of[error](nil); return err }},
	}

	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			is := is.New(t)

			is.True(errors.Is(test.of(), ErrInvalidArgument))
		})
	}
}

func TestOf_ZeroValueIsPresent(t *testing.T) {
	is := is.New(t)

	opt, err := Of(0)
	is.NoErr(err)
	is.True(opt.IsPresent())

	slice, err := Of([]string{})
	is.NoErr(err)
	is.True(slice.IsPresent())
}

func TestMustOf(t *testing.T) {
	is := is.New(t)

	is.Equal(MustOf(2020).OrElse(0), 2020)

	defer func() {
		r := recover()
		is.True(r != nil)

		err, ok := r.(error)
		is.True(ok)
		is.True(errors.Is(err, ErrInvalidArgument))
	}()

	MustOf[*int](nil)
}

func TestOfNullable(t *testing.T) {
	is := is.New(t)

	is.True(!OfNullable[*string](nil).IsPresent())
	is.True(OfNullable[*string](nil).IsEmpty())

	name := "ingduk2"
	is.True(OfNullable(&name).IsPresent())
	is.True(OfNullable(name).IsPresent())
}

func TestEmpty(t *testing.T) {
	is := is.New(t)

	empty := Empty[string]()
	is.True(!empty.IsPresent())
	is.True(empty.IsEmpty())

	var zero Optional[string]
	is.Equal(zero, empty)
}

func TestGet_Empty(t *testing.T) {
	is := is.New(t)

	value, err := Empty[string]().Get()
	is.True(errors.Is(err, ErrNoValue))
	is.Equal(value, "")
}

func TestIfPresent(t *testing.T) {
	is := is.New(t)

	length := 0
	OfNullable("ingduk2").IfPresent(func(name string) {
		length = len(name)
	})
	is.Equal(length, 7)

	OfNullable[*string](nil).IfPresent(func(_ *string) {
		is.Fail() // must not be called
	})
}

func TestIfPresentOrElse(t *testing.T) {
	is := is.New(t)

	calls := []string{}

	OfNullable("a").IfPresentOrElse(func(v string) { calls = append(calls, v) }, func() { calls = append(calls, "else") })
	Empty[string]().IfPresentOrElse(func(v string) { calls = append(calls, v) }, func() { calls = append(calls, "else") })

	is.Equal(calls, []string{"a", "else"})
}

func TestOrElse(t *testing.T) {
	is := is.New(t)

	is.Equal(OfNullable[*string](nil).OrElse(nil), (*string)(nil))
	is.Equal(Empty[string]().OrElse("ingduk2"), "ingduk2")
	is.Equal(OfNullable("ingduk33333").OrElse("ingduk2"), "ingduk33333")
}

func TestOrElse_EvaluatesDefaultEagerly(t *testing.T) {
	is := is.New(t)

	calls := 0
	text := func() string {
		calls++
		return "ingduk2"
	}

	is.Equal(OfNullable("ingduk33333").OrElseGet(text), "ingduk33333")
	is.Equal(calls, 0)

	is.Equal(OfNullable("ingduk33333").OrElse(text()), "ingduk33333")
	is.Equal(calls, 1)

	is.Equal(Empty[string]().OrElseGet(text), "ingduk2")
	is.Equal(calls, 2)
}

func TestOrElseThrow(t *testing.T) {
	is := is.New(t)

	errMissing := errors.New("missing")

	_, err := Empty[string]().OrElseThrow(func() error { return errMissing })
	is.Equal(err, errMissing)

	value, err := OfNullable("x").OrElseThrow(func() error {
		is.Fail() // must not be called
		return nil
	})
	is.NoErr(err)
	is.Equal(value, "x")
}

func TestOr(t *testing.T) {
	is := is.New(t)

	fallback := func() Optional[int] { return OfNullable(2) }

	is.Equal(OfNullable(1).Or(fallback).OrElse(0), 1)
	is.Equal(Empty[int]().Or(fallback).OrElse(0), 2)
}

func TestFilter(t *testing.T) {
	is := is.New(t)

	year := OfNullable(2020)
	is.True(!year.Filter(func(y int) bool { return y == 2019 }).IsPresent())
	is.True(year.Filter(func(y int) bool { return y == 2020 }).IsPresent())

	calls := 0
	Empty[int]().Filter(func(int) bool {
		calls++
		return true
	})
	is.Equal(calls, 0)
}

func TestFilter_Chain(t *testing.T) {
	is := is.New(t)

	inRange := func(m *modem) bool {
		price := Map(OfNullable(m), func(m *modem) *int { return m.price })

		return Map(price, func(p *int) int { return *p }).
			Filter(func(p int) bool { return p >= 10 }).
			Filter(func(p int) bool { return p <= 15 }).
			IsPresent()
	}

	twelve := 12
	twenty := 20

	is.True(!inRange(nil))
	is.True(!inRange(&modem{}))
	is.True(inRange(&modem{price: &twelve}))
	is.True(!inRange(&modem{price: &twenty}))
}

func TestMap(t *testing.T) {
	is := is.New(t)

	companies := MustOf([]string{"a", "b", "c", "d"})
	is.Equal(Map(companies, func(c []string) int { return len(c) }).OrElse(0), 4)

	password := MustOf(" password    ")
	is.True(!password.Filter(func(p string) bool { return p == "password" }).IsPresent())
	is.True(Map(password, strings.TrimSpace).Filter(func(p string) bool { return p == "password" }).IsPresent())
}

func TestMap_Empty(t *testing.T) {
	is := is.New(t)

	result := Map(Empty[int](), func(int) string {
		is.Fail() // must not be called
		return ""
	})

	is.True(result.IsEmpty())
}

func TestMap_NilResult(t *testing.T) {
	is := is.New(t)

	result := Map(OfNullable(1), func(int) *int { return nil })

	is.True(result.IsEmpty())
}

func TestFlatMap(t *testing.T) {
	is := is.New(t)

	p := MustOf(person{name: "jogn"})

	nested := Map(p, person.Name)
	inner, err := nested.OrElseThrow(func() error { return ErrInvalidArgument })
	is.NoErr(err)
	is.Equal(inner.OrElse(""), "jogn")

	is.Equal(FlatMap(p, person.Name), OfNullable("jogn"))
	is.Equal(FlatMap(p, person.Name).OrElse(""), "jogn")
	is.True(FlatMap(Empty[person](), person.Name).IsEmpty())
}

func TestString(t *testing.T) {
	is := is.New(t)

	is.Equal(Empty[string]().String(), "Optional.empty")
	is.Equal(OfNullable("ingduk2").String(), "Optional[ingduk2]")
}
