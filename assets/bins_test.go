package assets

import "testing"

func TestTrashBins(t *testing.T) {
	bins := TrashBins()
	if len(bins) == 0 {
		t.Fatal("bundled dataset parsed to zero bins")
	}

	for _, bin := range bins {
		if bin.Name == "" {
			t.Error("bin with empty name")
		}
		if bin.Latitude < 33 || bin.Latitude > 39 {
			t.Errorf("bin %q latitude %v outside Korea", bin.Name, bin.Latitude)
		}
		if bin.Longitude < 124 || bin.Longitude > 132 {
			t.Errorf("bin %q longitude %v outside Korea", bin.Name, bin.Longitude)
		}
	}
}

func TestNearby(t *testing.T) {
	// Fix right next to Deungchon Station
	result := Nearby(37.5186, 126.8650, 3)
	if len(result) != 3 {
		t.Fatalf("len = %d; want 3", len(result))
	}
	if result[0].Name != "Deungchon Station Exit 3" {
		t.Errorf("closest bin = %q; want Deungchon Station Exit 3", result[0].Name)
	}
	for i := 1; i < len(result); i++ {
		if result[i].DistanceMeters < result[i-1].DistanceMeters {
			t.Error("results not sorted by distance")
		}
	}
}

func TestNearby_NoLimit(t *testing.T) {
	all := TrashBins()
	result := Nearby(37.5169, 126.8664, 0)
	if len(result) != len(all) {
		t.Errorf("len = %d; want %d", len(result), len(all))
	}
}
