package repo

const (
	tablePasses        = "passes"
	tableGoogleClasses = "google_classes"
	tableGoogleObjects = "google_objects"
)

const (
	colID                 = "id"
	colSerialNumber       = "serial_number"
	colPassTypeIdentifier = "pass_type_identifier"
	colKind               = "kind"
	colOrganizationName   = "organization_name"
	colDescription        = "description"
	colWebServiceURL      = "web_service_url"
	colDescriptor         = "descriptor"
	colCreatedAt          = "created_at"
	colUpdatedAt          = "updated_at"
	colIssuerName         = "issuer_name"
	colClassID            = "class_id"
	colState              = "state"
	colBody               = "body"
)

// коды ошибок Postgres
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)
