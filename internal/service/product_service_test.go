package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
)

type memProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[uuid.UUID]*model.Product{}}
}

func (r *memProductRepo) FindByID(id uuid.UUID) (*model.Product, error) { return r.products[id], nil }
func (r *memProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) FindBySKUInStore(tx *gorm.DB, storeID uuid.UUID, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.StoreID == storeID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) FindAllByStore(storeID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (r *memProductRepo) FindImeiByCode(imei string) (*model.ProductImei, error) {
	for _, p := range r.products {
		for i := range p.Imeis {
			if p.Imeis[i].Imei == imei {
				return &p.Imeis[i], nil
			}
		}
	}
	return nil, nil
}
func (r *memProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}
func (r *memProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}
func (r *memProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	delete(r.products, id)
	return nil
}
func (r *memProductRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = newQuantity
	}
	return nil
}
func (r *memProductRepo) ReplaceImeis(tx *gorm.DB, productID uuid.UUID, imeis []string) error {
	return nil
}

func productCreator() *model.User {
	user := &model.User{Name: "Owner", Role: model.RoleOwner, IsActive: true}
	user.ID = uuid.New()
	return user
}

func imeiProductRequest(imeis []string) *CreateProductRequest {
	return &CreateProductRequest{
		StoreID:       uuid.New(),
		Name:          "Phone",
		SKU:           "PHONE-1",
		Barcode:       "B-" + uuid.NewString()[:8],
		IsImei:        true,
		Quantity:      1,
		PurchasePrice: 100,
		Imeis:         imeis,
	}
}

func TestCreateImeiProductRequiresExactlyOneImei(t *testing.T) {
	svc := NewProductService(newMemProductRepo(), nil, nil)
	creator := productCreator()

	// Omitting the IMEI list entirely must not slip through: the unit
	// would exist with zero IMEI rows.
	_, err := svc.CreateProduct(creator, imeiProductRequest(nil))
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))

	_, err = svc.CreateProduct(creator, imeiProductRequest([]string{}))
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))

	_, err = svc.CreateProduct(creator, imeiProductRequest([]string{"111111111111111", "222222222222222"}))
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))

	created, err := svc.CreateProduct(creator, imeiProductRequest([]string{"111111111111111"}))
	require.NoError(t, err)
	require.Len(t, created.Imeis, 1)
	assert.Equal(t, "111111111111111", created.Imeis[0].Imei)
}

func TestCreateImeiProductQuantityPinnedToOne(t *testing.T) {
	svc := NewProductService(newMemProductRepo(), nil, nil)

	req := imeiProductRequest([]string{"111111111111111"})
	req.Quantity = 3
	_, err := svc.CreateProduct(productCreator(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestCreateBulkProductRejectsImeis(t *testing.T) {
	svc := NewProductService(newMemProductRepo(), nil, nil)

	req := imeiProductRequest([]string{"111111111111111"})
	req.IsImei = false
	_, err := svc.CreateProduct(productCreator(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestUpdateKeepsStoredImeisWhenListAbsent(t *testing.T) {
	// On update a nil list means "keep the stored set"; an explicit
	// list still has to name exactly one IMEI.
	assert.NoError(t, validateImeiInvariant(true, 1, nil, false))
	assert.Error(t, validateImeiInvariant(true, 1, []string{}, false))
	assert.Error(t, validateImeiInvariant(true, 1, []string{"1", "2"}, false))
	assert.NoError(t, validateImeiInvariant(true, 1, []string{"111111111111111"}, false))
}

func TestCreateProductDuplicateSKUInStore(t *testing.T) {
	repo := newMemProductRepo()
	svc := NewProductService(repo, nil, nil)
	creator := productCreator()

	req := imeiProductRequest([]string{"111111111111111"})
	req.IsImei = false
	req.Imeis = nil
	_, err := svc.CreateProduct(creator, req)
	require.NoError(t, err)

	dup := *req
	dup.Barcode = "B-" + uuid.NewString()[:8]
	_, err = svc.CreateProduct(creator, &dup)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}

func TestCreateProductDuplicateImei(t *testing.T) {
	repo := newMemProductRepo()
	svc := NewProductService(repo, nil, nil)
	creator := productCreator()

	_, err := svc.CreateProduct(creator, imeiProductRequest([]string{"111111111111111"}))
	require.NoError(t, err)

	dup := imeiProductRequest([]string{"111111111111111"})
	dup.SKU = "PHONE-2"
	_, err = svc.CreateProduct(creator, dup)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}
