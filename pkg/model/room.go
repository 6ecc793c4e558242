package model

// Room is reference data owned by the room catalog; this service only reads it.
type Room struct {
	ID        string   `json:"room_id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
}

// HasAmenities reports whether the room offers every requested amenity.
func (r *Room) HasAmenities(requested []string) bool {
	for _, want := range requested {
		found := false
		for _, have := range r.Amenities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	copied := *r
	copied.Amenities = append([]string(nil), r.Amenities...)
	return &copied
}
