// Package extractors converts raw office documents to plain text.
//
// Each supported format has its own subpackage implementing
// driven.Extractor:
//
//   - pdf: external pdftotext conversion (poppler-utils)
//   - docx: native OOXML parsing (archive/zip + encoding/xml)
//   - msdoc: legacy binary .doc via antiword, falling back to catdoc
//
// The Registry in this package dispatches extraction by file type.
// External converter binaries are pluggable capabilities: they are
// invoked through the CommandRunner interface so tests can substitute
// a fake.
package extractors
