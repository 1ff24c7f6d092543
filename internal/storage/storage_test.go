package storage_test

import (
	"testing"

	"fleet_admin/internal/storage"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		bucket string
		want   string
	}{
		{
			"plain key",
			"https://proj.supabase.co/storage/v1/object/public/buses/image/abc_front.jpg",
			"buses",
			"image/abc_front.jpg",
		},
		{
			"url-encoded key",
			"https://proj.supabase.co/storage/v1/object/public/buses/image/abc_front%20view.jpg",
			"buses",
			"image/abc_front view.jpg",
		},
		{
			"bucket name inside the filename is not a marker",
			"https://proj.supabase.co/storage/v1/object/public/buses/image/buses_1.png",
			"buses",
			"image/buses_1.png",
		},
		{
			"marker absent",
			"https://cdn.example.com/buses/image/abc.jpg",
			"buses",
			"",
		},
		{
			"wrong bucket",
			"https://proj.supabase.co/storage/v1/object/public/stations/image/abc.jpg",
			"buses",
			"",
		},
		{
			"empty url",
			"",
			"buses",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.KeyFromURL(tt.url, tt.bucket); got != tt.want {
				t.Errorf("KeyFromURL(%q, %q) = %q, want %q", tt.url, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestKeyFromURLRoundTrip(t *testing.T) {
	base := "https://proj.supabase.co/storage/v1/object/public/stations/"
	key := "image/7f3a_estacion central.png"

	got := storage.KeyFromURL(base+key, "stations")
	if got != key {
		t.Fatalf("KeyFromURL() = %q, want %q", got, key)
	}
	if base+got != base+key {
		t.Errorf("re-embedding extracted key does not reproduce the original URL")
	}
}
