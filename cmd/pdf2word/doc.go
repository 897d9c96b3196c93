// Command pdf2word converts PDF documents to Word format through an external
// conversion service. It validates inputs locally, uploads them, downloads
// the converted documents, and keeps a history of past conversions.
package main
