// Package convert turns specification sources into HTML ready for enrichment.
//
// Office documents are converted with a LibreOffice command line
// (`lowriter --convert-to html`); HTML sources pass through unchanged apart
// from character set decoding. All converters return UTF-8 text.
package convert
