package closure

import "errors"

// ErrMissingDependentType is recorded on a Record whose type, superclass
// chain or field types cannot be resolved on the runtime classpath. It never
// aborts a pass.
var ErrMissingDependentType = errors.New("missing dependent type")

// ErrMissingRequiredConstructor aborts a pass when a service provider has
// no public no-argument constructor.
var ErrMissingRequiredConstructor = errors.New("missing required constructor")

// ErrUnreadableResource aborts a pass when the class file backing an entity
// type cannot be read.
var ErrUnreadableResource = errors.New("unreadable auxiliary resource")
