// Package producttype implements the product type registry: it loads type
// definitions from configuration once, serves option and priority views over
// them, and builds the handler and price model of a type through
// registered-constructor tables.
//
// Views are memoized independently (type map, composite list, priority
// order, price models) and share one lock, so a registry may be used from
// concurrent requests. Reset drops every cache.
package producttype
