// Command batchprint watches configured hot folders and sends new files to a
// printer, moving each file to a success or error directory afterwards.
package main
