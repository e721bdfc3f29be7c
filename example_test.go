package function_test

import (
	"errors"
	"fmt"

	"github.com/iahmad1337/function"
)

func ExampleOf() {
	f := function.Of(func(x int) int { return x + 5 })
	fmt.Println(f.MustInvoke(10))

	cp, _ := f.Clone()
	fmt.Println(cp.MustInvoke(3))
	// Output:
	// 15
	// 8
}

func ExampleFunc_Invoke_empty() {
	var f function.Func[string, int]

	_, err := f.Invoke("anything")
	fmt.Println(errors.Is(err, function.ErrEmptyInvocation))
	// Output:
	// true
}

func ExampleTarget() {
	f := function.New[int, int](adder{k: 5})

	if held := function.Target[adder](&f); held != nil {
		fmt.Println(held.k)
	}
	fmt.Println(function.Target[function.Fn[int, int]](&f) == nil)
	// Output:
	// 5
	// true
}

func ExampleFunc_MoveFrom() {
	src := function.Of(func(x int) int { return x * 3 })

	var dst function.Func[int, int]
	dst.MoveFrom(&src)

	fmt.Println(dst.MustInvoke(7))
	fmt.Println(src.IsEmpty())
	// Output:
	// 21
	// true
}
