package model

import "testing"

func TestPlaceUpdate_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(PlaceUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	phone := ""
	if (PlaceUpdate{Phone: &phone}).IsEmpty() {
		t.Error("update with an empty-string field is not empty")
	}
}
