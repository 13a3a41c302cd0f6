// Package primitives defines the declarative machine document read by the
// definition package: MachineConfig, StateConfig and TransitionConfig.
//
// Documents are YAML (gopkg.in/yaml.v3). Decoding is strict: unknown fields
// are errors. Transition lists accept three spellings so small machines stay
// short:
//
//	on:
//	  GO: two                         # target only
//	  PARAM: {target: two, guard: ok} # one transition
//	  BACK:                           # candidates, first enabled wins
//	    - {target: one, guard: ready}
//	    - {actions: [retry]}
//
// Names are not resolved here. Guards and actions stay strings until the
// definition package binds them.
package primitives
