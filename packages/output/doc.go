// Package output renders analysis reports for humans (colored console) and
// machines (indented JSON).
package output
