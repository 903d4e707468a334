package gostreams

import (
	"context"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestSum(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	sum, err := Sum(ctx, Map(products(), FuncMapper(productPrice)))

	is.NoErr(err)
	is.Equal(sum, 86)

	empty, _ := Sum(ctx, Empty[float64]())
	is.Equal(empty, 0.0)
}

func TestMin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	smallest, err := Min(ctx, Of(14, 11, 20, 39, 23))

	is.NoErr(err)
	is.Equal(smallest.OrElse(0), 11)

	empty, _ := Min(ctx, Empty[int]())
	is.True(empty.IsEmpty())
}

func TestMax(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	largest, err := Max(ctx, Of("Java", "Scala", "Groovy", "Python"))

	is.NoErr(err)
	is.Equal(largest.OrElse(""), "Scala")
}

func TestMinFunc_Ties(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	byPrice := Comparing(productPrice)

	cheapest, _ := MinFunc(ctx, products(), byPrice)
	is.Equal(cheapest.OrElse(product{}).name, "lemon")

	priciest, _ := MaxFunc(ctx, products(), byPrice)
	is.Equal(priciest.OrElse(product{}).name, "potatos")
}

func TestAverage(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	avg, err := Average(ctx, Map(products(), FuncMapper(productPrice)))

	is.NoErr(err)
	is.Equal(avg.OrElse(0), 17.2)
}

func TestAverage_Floats(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	avg, err := Average(ctx, Of(1.1, 2.2, 3.3, 4.4, 5.5))

	is.NoErr(err)
	is.True(math.Abs(avg.OrElse(0)-3.3) < 1e-9)
}

func TestAverage_Empty(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	avg, err := Average(ctx, Empty[int]())

	is.NoErr(err)
	is.True(avg.IsEmpty())
}

func TestSummarize(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	stats, err := Summarize(ctx, Map(products(), FuncMapper(productPrice)))

	is.NoErr(err)
	is.Equal(stats.Count, uint64(5))
	is.Equal(stats.Sum, 86)
	is.Equal(stats.Min, 13)
	is.Equal(stats.Max, 23)
	is.Equal(stats.Average(), 17.2)
}

func TestSummarize_Empty(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	stats, err := Summarize(ctx, Empty[int]())

	is.NoErr(err)
	is.Equal(stats.Count, uint64(0))
	is.Equal(stats.Min, 0)
	is.Equal(stats.Max, 0)
	is.Equal(stats.Average(), 0.0)
}

func TestMean_Merge(t *testing.T) {
	is := is.New(t)

	a := mean{}.add(1).add(2)
	b := mean{}.add(3).add(4).add(5)

	merged := a.merge(b)

	is.Equal(merged.count, uint64(5))
	is.Equal(merged.average(), 3.0)
	is.Equal(a.merge(mean{}).average(), 1.5)
	is.Equal(mean{}.merge(b).average(), 4.0)
}
