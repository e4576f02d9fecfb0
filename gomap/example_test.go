package gomap_test

import (
	"fmt"

	"github.com/signadot/xmlmap/gomap"
)

func Example() {
	type Book struct {
		XMLName struct{} `xml:"book"`
		Title   string   `xml:"title"`
		Edition int      `xml:"edition"`
		Authors []string `xml:"author"`
	}
	var b Book
	doc := `<book><title>Go</title><edition>2</edition><author>A</author><author>B</author></book>`
	if err := gomap.Unmarshal([]byte(doc), &b); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(b.Title, b.Edition, b.Authors)

	b.Edition = 3
	d, err := gomap.Marshal(b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(string(d))
	// Output:
	// Go 2 [A B]
	// <book>
	//   <title>Go</title>
	//   <edition>3</edition>
	//   <author>A</author>
	//   <author>B</author>
	// </book>
}

func ExampleGet() {
	var v struct {
		Attrs map[string]gomap.AnyValue `xml:",attrs"`
	}
	if err := gomap.Unmarshal([]byte(`<book id="5" language="en" price="79.9"/>`), &v); err != nil {
		fmt.Println(err)
		return
	}
	id, ok := gomap.Get[int](v.Attrs["id"])
	fmt.Println(id, ok)
	_, ok = gomap.Get[int](v.Attrs["language"])
	fmt.Println(ok)
	price, _ := gomap.Get[float64](v.Attrs["price"])
	fmt.Println(price, v.Attrs["price"].Kind())
	// Output:
	// 5 true
	// false
	// 79.9 float
}

func ExampleMissingFieldError() {
	type Book struct {
		Title   string `xml:"title"`
		Edition int    `xml:"edition,required"`
	}
	var b Book
	err := gomap.Unmarshal([]byte(`<book><title>Go</title></book>`), &b)
	fmt.Println(err)
	// Output:
	// missing required field "edition" of Book at edition
}
