// Package document reads declarative layout trees and writes sizing reports.
//
// A document describes a viewport and a tree of nodes in TOML or JSON. Lengths
// are written in CSS notation:
//
//	100      pixels
//	100px    pixels
//	50%      percent of the nearest sized ancestor
//	10vw     percent of the viewport width
//	5vh      percent of the viewport height
//
// A minimal TOML document:
//
//	[viewport]
//	width = 1000
//	height = 1000
//
//	[root]
//	id = "page"
//	direction = "y"
//
//	  [[root.children]]
//	  id = "header"
//	  width = "100%"
//	  height = "10vh"
//
//	  [[root.children]]
//	  id = "caption"
//	  text = "Hello, world"
//
// Leaves may carry intrinsic content instead of children: a fixed
// measure = {width, height}, or text measured in terminal cells and scaled by
// the document's [cell] size. Setting fill = true lets a leaf grow to the size
// its parent offers.
//
// [Document.Build] turns the description into a [layout.Node] tree; nodes
// without an id receive a stable UUID derived from their position. [Report]
// is the serialized result of a sizing pass.
package document
