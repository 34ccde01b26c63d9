package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/docesonho/bakery-backend/internal/notify"
)

func seedService(t *testing.T) (*Service, *notify.Recorder) {
	t.Helper()
	repo := NewInMemoryRepository(nil, []Category{
		{ID: "cat-bolos", Name: "Bolos", OrderIndex: 1, Active: true},
		{ID: "cat-tortas", Name: "Tortas", OrderIndex: 2, Active: true},
	})
	rec := notify.NewRecorder()
	svc := NewService(repo, rec, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return svc, rec
}

func validProduct(name, categoryID string) Product {
	return Product{
		Name:        name,
		Description: "feito no dia",
		Price:       decimal.RequireFromString("45.90"),
		ImageURL:    "https://example.com/img.jpg",
		CategoryID:  categoryID,
		Active:      true,
	}
}

func TestServiceIsLoadingUntilFirstRefresh(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil, nil), notify.NewRecorder(), nil)
	if !svc.IsLoading() {
		t.Fatalf("expected loading before first refresh")
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if svc.IsLoading() {
		t.Fatalf("expected not loading after refresh")
	}
}

func TestCreateProductRefetchesCache(t *testing.T) {
	svc, rec := seedService(t)

	created, err := svc.CreateProduct(context.Background(), validProduct("Bolo de Chocolate", "cat-bolos"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}

	products := svc.Products()
	if len(products) != 1 || products[0].ID != created.ID {
		t.Fatalf("expected cache refetched with new product, got %+v", products)
	}
	if len(rec.Successes) != 1 || rec.Successes[0] != "Produto criado com sucesso!" {
		t.Fatalf("unexpected notifications %+v", rec.Successes)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := seedService(t)

	cases := map[string]Product{
		"empty name":       {Description: "d", Price: decimal.NewFromInt(10), ImageURL: "u", CategoryID: "cat-bolos"},
		"zero price":       {Name: "Bolo", Description: "d", Price: decimal.Zero, ImageURL: "u", CategoryID: "cat-bolos"},
		"negative price":   {Name: "Bolo", Description: "d", Price: decimal.NewFromInt(-5), ImageURL: "u", CategoryID: "cat-bolos"},
		"unknown category": validProduct("Bolo", "cat-missing"),
	}
	for name, p := range cases {
		if _, err := svc.CreateProduct(context.Background(), p); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("%s: expected ErrInvalidProduct, got %v", name, err)
		}
	}
	if len(svc.Products()) != 0 {
		t.Fatalf("expected no products after rejected submissions")
	}
}

type failingRepo struct {
	Repository
}

func (r failingRepo) CreateProduct(context.Context, Product) (Product, error) {
	return Product{}, errors.New("network down")
}

func TestCreateProductFailureLeavesCacheUntouched(t *testing.T) {
	repo := NewInMemoryRepository(nil, []Category{{ID: "cat-bolos", Name: "Bolos"}})
	rec := notify.NewRecorder()
	svc := NewService(failingRepo{repo}, rec, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	_, err := svc.CreateProduct(context.Background(), validProduct("Bolo", "cat-bolos"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(svc.Products()) != 0 {
		t.Fatalf("expected cache untouched on failure")
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "Erro ao criar produto" {
		t.Fatalf("unexpected notifications %+v", rec.Errors)
	}
}

func TestDerivedQueries(t *testing.T) {
	svc, _ := seedService(t)

	p1, _ := svc.CreateProduct(context.Background(), validProduct("Bolo de Chocolate", "cat-bolos"))
	torta := validProduct("Torta de Limão", "cat-tortas")
	torta.Featured = true
	p2, _ := svc.CreateProduct(context.Background(), torta)

	byCat := svc.ProductsByCategory("cat-bolos")
	if len(byCat) != 1 || byCat[0].ID != p1.ID {
		t.Fatalf("unexpected by-category result %+v", byCat)
	}

	featured := svc.Featured()
	if len(featured) != 1 || featured[0].ID != p2.ID {
		t.Fatalf("unexpected featured result %+v", featured)
	}

	if got := svc.Search("LIMÃO"); len(got) != 1 || got[0].ID != p2.ID {
		t.Fatalf("expected case-insensitive name match, got %+v", got)
	}
	if got := svc.Search("feito no dia"); len(got) != 2 {
		t.Fatalf("expected description match on both products, got %d", len(got))
	}
	if got := svc.Search(""); len(got) != 0 {
		t.Fatalf("expected no results for empty query, got %d", len(got))
	}
}

func TestDeleteCategoryGuard(t *testing.T) {
	svc, rec := seedService(t)
	if _, err := svc.CreateProduct(context.Background(), validProduct("Bolo", "cat-bolos")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.DeleteCategory(context.Background(), "cat-bolos")
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if len(svc.Categories()) != 2 {
		t.Fatalf("expected category list unchanged after rejected delete")
	}
	if len(rec.Errors) == 0 {
		t.Fatalf("expected an error notification")
	}

	// a category with no products can be deleted
	if err := svc.DeleteCategory(context.Background(), "cat-tortas"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cats := svc.Categories()
	if len(cats) != 1 || cats[0].ID != "cat-bolos" {
		t.Fatalf("expected only cat-bolos to remain, got %+v", cats)
	}
}

func TestCategoriesOrderedByOrderIndex(t *testing.T) {
	repo := NewInMemoryRepository(nil, []Category{
		{ID: "c3", Name: "Doces", OrderIndex: 3},
		{ID: "c1", Name: "Bolos", OrderIndex: 1},
		{ID: "c2", Name: "Tortas", OrderIndex: 2},
	})
	svc := NewService(repo, notify.NewRecorder(), nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	cats := svc.Categories()
	for i, want := range []string{"c1", "c2", "c3"} {
		if cats[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, cats[i].ID)
		}
	}
}
