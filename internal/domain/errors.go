package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnusableText        = errors.New("could not extract usable text from the PDF")
	ErrParseFailure        = errors.New("model response is not valid JSON")
	ErrSchemaValidation    = errors.New("model output does not match the expected schema")
)
