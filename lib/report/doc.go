// Package report renders benchmark results and RPC call outcomes as a markdown
// table, JSON or YAML.
package report
