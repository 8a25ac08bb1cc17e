package mapper_test

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/google/uuid"

	"es-mapper/mapper"
)

type Product struct {
	ID    uuid.UUID
	Title string `es:",text"`
	Price float64
	Tags  []string
	Notes string `es:"-"`
}

func Example() {
	tree, err := mapper.New().GetMapping(reflect.TypeFor[Product]())
	if err != nil {
		fmt.Println(err)
		return
	}

	data, _ := json.MarshalIndent(tree, "", "  ")
	fmt.Println(string(data))
	// Output:
	// {
	//   "properties": {
	//     "id": {
	//       "type": "keyword"
	//     },
	//     "title": {
	//       "type": "text"
	//     },
	//     "price": {
	//       "type": "double"
	//     },
	//     "tags": {
	//       "type": "keyword"
	//     }
	//   }
	// }
}

func ExampleDescribe() {
	tm, err := mapper.New().TypeMapping(reflect.TypeFor[Product]())
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = mapper.Describe(os.Stdout, tm)
	// Output:
	// # es-mapper/mapper_test.Product
	// id     keyword  ID     github.com/google/uuid.UUID
	// title  text     Title  string
	// price  double   Price  float64
	// tags   keyword  Tags   []string
}

func ExampleGroupByKind() {
	tm, err := mapper.New().TypeMapping(reflect.TypeFor[Product]())
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = mapper.WriteGroups(os.Stdout, mapper.GroupByKind(tm))
	// Output:
	// double:  price
	// keyword: id, tags
	// text:    title
}
