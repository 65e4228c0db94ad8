package listener_test

import (
	"fmt"
	"log"

	"github.com/bjaus/listener"
)

// Users handles user messages.
type Users struct {
	Notifier any
}

func (u *Users) Get(id string) string { return "user " + id }
func (u *Users) Created(id string)    { fmt.Println("created", id) }

func Example() {
	reg := listener.NewRegistry()
	reg.Controller((*Users)(nil), listener.String("users"))
	if err := reg.MessagePattern((*Users)(nil), "Get", listener.String("get")); err != nil {
		log.Fatal(err)
	}
	if err := reg.EventPattern((*Users)(nil), "Created", listener.String("created")); err != nil {
		log.Fatal(err)
	}

	e := listener.NewExplorer(reg)
	for _, m := range e.Explore(&Users{}) {
		fmt.Printf("%s -> %s (event: %t)\n", m.Pattern.Key(), m.MethodKey, m.IsEventHandler)
	}

	// Output:
	// users/created -> Created (event: true)
	// users/get -> Get (event: false)
}

func Example_router() {
	reg := listener.NewRegistry()
	if err := reg.MessagePattern((*Users)(nil), "Get", listener.MustParsePattern(`{"cmd": "get"}`)); err != nil {
		log.Fatal(err)
	}
	reg.Controller((*Users)(nil), listener.String("users"))

	r := listener.NewRouter()
	if err := r.Mount(listener.NewExplorer(reg), &Users{}); err != nil {
		log.Fatal(err)
	}

	route, _ := r.Lookup(listener.MustParsePattern(`{"controller": "users", "cmd": "get"}`))
	fmt.Println(route.Key, route.Method.MethodKey)

	// Output:
	// {"cmd":"get","controller":"users"} Get
}

func ExampleMergePatterns() {
	class := listener.NewMap(listener.Field{Key: listener.ControllerKey, Value: listener.String("user")})

	fmt.Println(listener.MergePatterns(class, listener.String("getData")).Key())
	fmt.Println(listener.MergePatterns(class, listener.MustParsePattern(`{"use": "getData"}`)).Key())
	fmt.Println(listener.MergePatterns(class, nil).Key())
	fmt.Println(listener.MergePatterns(nil, listener.Number(7)).Key())

	// Output:
	// user/getData
	// {"controller":"user","use":"getData"}
	// {"controller":"user"}
	// 7
}

func ExampleExplorer_ScanForClientHooks() {
	reg := listener.NewRegistry()
	if err := reg.Client((*Users)(nil), "Notifier", map[string]any{"transport": "nats"}); err != nil {
		log.Fatal(err)
	}

	e := listener.NewExplorer(reg)
	for hook := range e.ScanForClientHooks(&Users{}) {
		var opts listener.ClientOptions
		if err := hook.Decode(&opts); err != nil {
			log.Fatal(err)
		}
		fmt.Println(hook.Property, opts.Transport)
	}

	// Output:
	// Notifier nats
}
