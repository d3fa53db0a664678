// Package inspect loads a document and a region file into a live view
// tree and exposes it for the backtension command: a zone report for
// "backtension zones" and a debug HTTP router for "backtension serve".
//
// All view work runs on the page's loop. HTTP handlers hand closures to
// the loop with Page.Do and wait for them, so the view tree is only ever
// touched by the goroutine driving Queue.Run.
package inspect
