// Package reducerx turns pure reducers into live, observable state cells and
// answers whether a hypothetical event would change a machine's state.
//
// # Actors
//
// An Actor wraps a Reducer and an initial state:
//
//	calc := func(n int, e reducerx.Event) int {
//		switch e.Type {
//		case "ADD":
//			return n + e.Payload.(int)
//		case "SUBTRACT":
//			return n - e.Payload.(int)
//		}
//		return n
//	}
//	a := reducerx.NewActor(calc, 0)
//	sub := a.Subscribe(func(n int) { fmt.Println(n) }) // prints 0 immediately
//	a.Send(reducerx.NewEvent("ADD", 3))                 // prints 3
//	sub.Unsubscribe()
//
// Send is synchronous: the reducer runs, then every subscribed observer is
// called, before Send returns. Nothing is queued.
//
// # Machines
//
// MachineFromReducer lifts a reducer into a one-state Machine with a single
// wildcard transition. Scalar states are boxed under a "value" field; records
// (structs, maps, pointers to structs) are the context themselves. The choice
// is made once, from the initial value.
//
// Machines built with MachineBuilder are interpreted by a Service:
//
//	m := reducerx.NewMachineBuilder[struct{}]("toggle", "one").
//		State("one").On("GO_TO_STATE_TWO", "two", nil).
//		State("two").On("GO_TO_STATE_ONE", "one", nil).
//		MustBuild()
//	svc := reducerx.Interpret(m)
//	_ = svc.Start()
//
// # Speculative evaluation
//
// A TransitionProbe subscribes to a machine-backed reference and re-derives,
// on every state, whether its candidate event would change that state, using
// only Machine.Transition:
//
//	p, err := reducerx.NewTransitionProbe(svc, "GO_TO_STATE_TWO")
//	if err != nil {
//		return err // ref is not machine-backed
//	}
//	defer p.Close()
//	p.Value() // true
//
// References that are still initializing implement Deferrable (see
// DeferredRef); probes on them read false until they resolve.
package reducerx
