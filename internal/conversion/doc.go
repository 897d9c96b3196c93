// Package conversion implements the client-side conversion flow: file
// validation, the idle/uploading/result/error state machine, and the session
// controller that runs uploads and downloads as cancellable tasks.
package conversion
