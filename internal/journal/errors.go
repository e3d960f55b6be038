package journal

import "codeberg.org/mutker/hwcaps/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("journal_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("journal_transaction_failed")

	// Storage Errors
	ErrStorageAccess = errors.ErrorCode("journal_storage_access_failed")
	ErrStorageInit   = errors.ErrInitFailed
	ErrStorageClose  = errors.ErrShutdownFailed

	// Entry Errors
	ErrInvalidEntry = errors.ErrorCode("journal_invalid_entry")
	ErrEncodeValue  = errors.ErrorCode("journal_encode_value_failed")
	ErrDecodeValue  = errors.ErrorCode("journal_decode_value_failed")
	ErrRecordFailed = errors.ErrorCode("journal_record_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
