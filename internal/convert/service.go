package convert

// ConversionService is the orchestration layer that coordinates across the
// store, the directory service and the payload store to run the three
// conversion stages: folder registration, library provisioning and document
// migration. Each stage is a synchronous batch call that can be re-run
// safely; the caller chunks large record sets.
type ConversionService struct {
	store       Store
	directory   DirectoryService
	payloads    PayloadStore
	encryptor   Encryptor // nil when payload encryption is disabled
	permissions PermissionMap
	logger      Logger
	clock       Clock
	idgen       IDGenerator
}

// NewConversionService creates a new ConversionService with the provided
// dependencies. encryptor may be nil; payloads may be nil when only the
// registration and provisioning stages will run.
func NewConversionService(store Store, directory DirectoryService, payloads PayloadStore, encryptor Encryptor, permissions PermissionMap, logger Logger, clock Clock, idgen IDGenerator) *ConversionService {
	return &ConversionService{
		store:       store,
		directory:   directory,
		payloads:    payloads,
		encryptor:   encryptor,
		permissions: permissions,
		logger:      logger,
		clock:       clock,
		idgen:       idgen,
	}
}
