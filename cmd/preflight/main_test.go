package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hamed0406/availcheck/internal/domain"
)

func TestDomainCounts_FirstSeenOrder(t *testing.T) {
	eps := []domain.Endpoint{
		{Name: "a", URL: "https://zeta.example/"},
		{Name: "b", URL: "https://alpha.example/x"},
		{Name: "c", URL: "https://zeta.example/careers"},
		{Name: "d", URL: "http://alpha.example:8080/"},
	}
	order, counts, err := domainCounts(eps)
	if err != nil {
		t.Fatalf("domainCounts: %v", err)
	}
	want := []string{"zeta.example", "alpha.example", "alpha.example:8080"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("want %v, got %v", want, order)
	}
	if counts["zeta.example"] != 2 || counts["alpha.example"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestDomainCounts_BadURL(t *testing.T) {
	_, _, err := domainCounts([]domain.Endpoint{{Name: "nohost", URL: "/relative"}})
	if !errors.Is(err, domain.ErrNoHost) {
		t.Fatalf("want ErrNoHost, got %v", err)
	}
}
