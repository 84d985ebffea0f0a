// Package menu implements the selection coordinator behind the model menu.
//
// A UI feeds one Option at a time to Coordinator.Select. The coordinator keeps
// a Ballot (one checked option per exclusivity group), derives a View from it
// after every event, and commits the ballot into the configuration store only
// when the run option is selected while a concrete model is chosen.
package menu
