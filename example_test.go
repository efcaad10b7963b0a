package gencache_test

import (
	"fmt"
	"time"

	"github.com/unkn0wn-root/gencache"
)

func Example() {
	cache, err := gencache.New[string, string](gencache.Options[string, string]{
		Name:   "greetings",
		MaxAge: time.Hour,
	})
	if err != nil {
		panic(err)
	}
	defer cache.Close()

	v, _ := cache.GetOrAdd("hello", func(string) (string, error) {
		return "world", nil
	})
	fmt.Println(v)

	v, ok := cache.TryGet("hello")
	fmt.Println(v, ok)

	cache.TryRemove("hello")
	_, ok = cache.TryGet("hello")
	fmt.Println(ok)

	// Output:
	// world
	// world true
	// false
}
