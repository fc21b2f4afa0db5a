package pstr_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/pstr"
)

func Example() {
	s := pstr.New()

	a, err := s.InternString("go")
	if err != nil {
		log.Fatal(err)
	}
	b, err := s.Intern([]byte("go"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(a == b, a.Len(), a)
	// Output: true 2 go
}

func ExampleMustIntern() {
	var (
		kindPod     = pstr.MustIntern("Pod")
		kindService = pstr.MustIntern("Service")
	)

	kinds := map[pstr.Handle]int{kindPod: 1, kindService: 2}

	fmt.Println(kinds[pstr.MustIntern("Service")])
	// Output: 2
}

func ExampleStore_Stats() {
	s := pstr.New(pstr.WithHeapBlocks())

	for _, w := range []string{"alpha", "beta", "alpha"} {
		if _, err := s.InternString(w); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(s.Stats())
	// Output: Stats{strings: 2, blocks: 1, reserved: 1.0 MiB, used: 11 B, wasted: 0 B}
}
