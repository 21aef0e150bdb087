// Package protoval is the runtime support imported by code generated with
// the protoval compiler.
//
// Generated value types expose repeated fields as List values, which have no
// mutating methods. Their builders accumulate elements in a ListBuilder and
// freeze it into a List on Build:
//
//	b := example.NewPointBuilder().SetX(1).AddValues(1, 2)
//	b.ValuesList().Add(3) // still mutable
//	p := b.Build()
//	p.Values().Len()      // 3
//	p.String()            // Point{X=1, Values=[1, 2, 3]}
//
// The string form of a value is computed once per instance through Lazy and
// assembled with a ToStringHelper.
package protoval
