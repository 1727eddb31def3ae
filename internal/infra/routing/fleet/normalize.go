package fleet

import (
	"fmt"
	"math"

	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"
)

// Normalize validates raw location records into a StopSet that keeps the
// input order. It fails on the first record with a missing, non-finite or
// out-of-range coordinate.
func Normalize(records []entity.RawLocation) (entity.StopSet, error) {
	if len(records) == 0 {
		return nil, domainerrors.NewValidationError(
			domainerrors.CodeNoLocations,
			"locations",
			"no locations provided",
		)
	}

	stops := make(entity.StopSet, 0, len(records))
	for i, record := range records {
		lat, err := coordinate(record.Lat, i, "lat", 90)
		if err != nil {
			return nil, err
		}

		lng, err := coordinate(record.Long, i, "long", 180)
		if err != nil {
			return nil, err
		}

		stops = append(stops, entity.Stop{Index: i, Lat: lat, Lng: lng})
	}

	return stops, nil
}

func coordinate(value *float64, index int, name string, limit float64) (float64, error) {
	field := fmt.Sprintf("locations[%d].%s", index, name)

	if value == nil {
		return 0, domainerrors.NewValidationError(domainerrors.CodeInvalidLocation, field, "coordinate is missing")
	}

	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domainerrors.NewValidationError(domainerrors.CodeInvalidLocation, field, "coordinate is not finite")
	}

	if v < -limit || v > limit {
		return 0, domainerrors.NewValidationError(
			domainerrors.CodeInvalidLocation,
			field,
			fmt.Sprintf("coordinate %g is outside [-%g, %g]", v, limit, limit),
		)
	}

	return v, nil
}
