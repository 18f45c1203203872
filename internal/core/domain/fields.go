package domain

// Field names of the bot/tenant index schema. Shared by the schema builder,
// the query dispatcher and the mutation engine so the names never drift.
const (
	FieldID               = "id"
	FieldContent          = "content"
	FieldBotID            = "bot_id"
	FieldDocumentID       = "document_id"
	FieldDocumentFolderID = "document_folder_id"
	FieldBlobPath         = "blob_path"
	FieldFileName         = "file_name"
	FieldFileExtension    = "file_extension"
	FieldPageNumber       = "page_number"
	FieldQuestionAnswerID = "question_answer_id"
	FieldIsVectorized     = "is_vectorized"
	FieldTitleVector      = "title_vector"
	FieldContentVector    = "content_vector"
	FieldCreatedAt        = "created_at"
)

// Field names of the legacy URSA schemas. The pre-2024-08 generation spells
// the extension field "extention"; the 2024-08+ generation fixes the typo
// and adds path and timestamp fields.
const (
	UrsaFieldBranch            = "branch"
	UrsaFieldDocumentType      = "document_type"
	UrsaFieldYear              = "year"
	UrsaFieldConstructionName  = "construction_name"
	UrsaFieldAuthor            = "author"
	UrsaFieldPath              = "path"
	UrsaFieldExtentionLegacy   = "extention"
	UrsaFieldExtension         = "extension"
	UrsaFieldFullPath          = "full_path"
	UrsaFieldInterpolationPath = "interpolation_path"
	UrsaFieldUpdatedAt         = "updated_at"
)
