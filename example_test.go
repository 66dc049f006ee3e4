package wheelsieve_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hupe1980/wheelsieve"
)

func Example() {
	sv, err := wheelsieve.New(1_000_000)
	if err != nil {
		log.Fatal(err)
	}
	defer sv.Close()

	sv.Run()

	n, err := sv.Count()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(n, sv.Validate() == nil)
	// Output: 78498 true
}

func ExampleSieve_Primes() {
	sv, err := wheelsieve.New(50)
	if err != nil {
		log.Fatal(err)
	}
	defer sv.Close()

	sv.Run()
	for p := range sv.Primes() {
		fmt.Print(p, " ")
	}
	fmt.Println()
	// Output: 2 3 5 7 11 13 17 19 23 29 31 37 41 43 47
}

func ExampleEngine_ReadSnapshot() {
	engine := wheelsieve.NewEngine(wheelsieve.WithThreads(2))
	defer engine.Close()

	sv, err := engine.New(10_000)
	if err != nil {
		log.Fatal(err)
	}
	defer sv.Close()
	sv.Run()

	var buf bytes.Buffer
	if err := sv.WriteSnapshot(&buf, wheelsieve.WithCompression(wheelsieve.CompressionLZ4)); err != nil {
		log.Fatal(err)
	}

	restored, err := engine.ReadSnapshot(&buf)
	if err != nil {
		log.Fatal(err)
	}
	defer restored.Close()

	n, _ := restored.Count()
	fmt.Println(n)
	// Output: 1229
}
