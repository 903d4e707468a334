package gostreams

import (
	"context"
	"fmt"
	"strconv"
)

func Example() {
	// construct a sequence from a slice
	ints := FromSlice([]int{1, 2, 3, 4, 5})

	// map elements by doubling them
	// since we only need the elements themselves, we can use FuncMapper
	ints = Map(ints, FuncMapper(func(elem int) int {
		return elem * 2
	}))

	// map elements by converting them to strings
	intStrs := Map(ints, FuncMapper(strconv.Itoa))

	// collect the strings into a slice
	strs, _ := ToSlice(context.Background(), intStrs)

	fmt.Printf("%+v\n", strs)
	// Output: [2 4 6 8 10]
}

func Example_parallel() {
	ctx := context.Background()

	// terminal operations on parallel sequences process partitions concurrently,
	// but ordered results are still in encounter order
	squares := Map(RangeClosed(1, 10).Parallel(), FuncMapper(func(elem int) int {
		return elem * elem
	}))

	result, _ := ToSlice(ctx, squares)

	fmt.Println(result)
	// Output: [1 4 9 16 25 36 49 64 81 100]
}

func ExampleIterate() {
	ctx := context.Background()

	evens := Limit(Iterate(10, func(prev int) int {
		return prev + 2
	}), 5)

	_ = ForEach(ctx, evens, FuncConsumer(func(elem int) {
		fmt.Println(elem)
	}))

	// Output:
	// 10
	// 12
	// 14
	// 16
	// 18
}

func ExampleGroupingBy() {
	ctx := context.Background()

	words := Of("apple", "avocado", "banana", "blueberry", "cherry")

	groups, _ := GroupingBy(ctx, words, FuncMapper(func(elem string) byte {
		return elem[0]
	}))

	groups.Each(func(key byte, group []string) bool {
		fmt.Printf("%c: %v\n", key, group)
		return true
	})

	// Output:
	// a: [apple avocado]
	// b: [banana blueberry]
	// c: [cherry]
}

func ExampleReduce() {
	ctx := context.Background()

	product, _ := Reduce(ctx, RangeClosed(1, 5), FuncBinary(func(a int, b int) int {
		return a * b
	}))

	fmt.Println(product)
	// Output: Optional[120]
}

func ExampleAnyMatch() {
	ctx := context.Background()

	names := Of("Eric", "Elena", "Java")

	found, err := AnyMatch(ctx, names, FuncPredicate(func(elem string) bool {
		return elem == "Elena"
	}))

	fmt.Println(found, err)
	// Output: true <nil>
}
