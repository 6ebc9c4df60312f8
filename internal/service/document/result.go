package document

// ImportCode classifies a failed import.
type ImportCode string

const (
	CodeNoSentences           ImportCode = "NO_SENTENCES"
	CodeDocumentAlreadyExists ImportCode = "DOCUMENT_ALREADY_EXISTS"
	CodeDocumentInsertFailed  ImportCode = "DOCUMENT_INSERT_FAILED"
	CodeSentenceInsertFailed  ImportCode = "SENTENCE_INSERT_FAILED"
	CodeDBError               ImportCode = "DB_ERROR"
)

var importMessages = map[ImportCode]string{
	CodeNoSentences:           "No sentences in the source language were detected in the file.",
	CodeDocumentAlreadyExists: "A document with this file name already exists. Rename the file and try again.",
	CodeDocumentInsertFailed:  "Failed to create a document record in the database.",
	CodeSentenceInsertFailed:  "Failed to insert one or more sentences into the database.",
	CodeDBError:               "An unexpected database error occurred while importing sentences.",
}

// ImportResult is the outcome of an import. On failure Code and Message
// are set; Details carries the underlying error text for logs and
// diagnostics only.
type ImportResult struct {
	OK                bool
	DocumentID        int64
	InsertedSentences int
	Code              ImportCode
	Message           string
	Details           string
}

func failed(code ImportCode, err error) ImportResult {
	r := ImportResult{Code: code, Message: importMessages[code]}
	if err != nil {
		r.Details = err.Error()
	}
	return r
}
