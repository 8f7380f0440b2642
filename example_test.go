package btgrep_test

import (
	"fmt"

	"github.com/coregx/btgrep"
)

func Example() {
	re := btgrep.MustCompile(`(\d+) (\w+) squares and \1 \2 circles`)

	fmt.Println(re.MatchString("3 red squares and 3 red circles"))
	fmt.Println(re.MatchString("3 red squares and 4 red circles"))
	// Output:
	// true
	// false
}

func ExampleMatchString() {
	matched, err := btgrep.MatchString(`^log`, "log in")
	fmt.Println(matched, err)

	matched, err = btgrep.MatchString(`^log`, "slog")
	fmt.Println(matched, err)

	_, err = btgrep.MatchString(`(abc`, "abc")
	fmt.Println(err)
	// Output:
	// true <nil>
	// false <nil>
	// error parsing pattern: missing closing ): `(abc`
}

func ExampleRegex_FindStringSubmatch() {
	re := btgrep.MustCompile(`(\w+)@(\w+)`)
	fmt.Printf("%q\n", re.FindStringSubmatch("mail bob@host now"))
	// Output:
	// ["bob@host" "bob" "host"]
}

func ExampleRegex_FindAllString() {
	re := btgrep.MustCompile(`(cat|dog)s?`)
	fmt.Println(re.FindAllString("cats and dogs and a dog", -1))
	// Output:
	// [cats dogs dog]
}

func ExampleRegex_FindStringIndex() {
	re := btgrep.MustCompile(`本$`)
	fmt.Println(re.FindStringIndex("日本"))
	// Output:
	// [3 6]
}
