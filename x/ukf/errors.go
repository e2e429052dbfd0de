package ukf

import "errors"

// ErrSingularInnovation is returned by MeasurementUpdate when P_zz is not
// invertible. The filter's state and covariance are left unchanged.
var ErrSingularInnovation = errors.New("ukf: singular innovation covariance")
