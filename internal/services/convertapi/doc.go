// Package convertapi implements the HTTP client for the external PDF-to-Word
// conversion service: multipart upload to /convert, document retrieval from
// /download/{file_id}/{filename}, the /health probe, and the /cleanup purge.
// The service performs the conversion itself; this client treats it as opaque.
package convertapi
