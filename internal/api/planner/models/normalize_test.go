package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeClientDefaults(t *testing.T) {
	c := Client{Name: "Acme"}
	got, result := NormalizeClient(c)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.True(t, result.IsUsable())
	assert.NotNil(t, got.Channels)
	assert.NotNil(t, got.PaidChannels)
	assert.NotNil(t, got.Axes)
}

func TestNormalizeClientPaidDisabledClearsChannels(t *testing.T) {
	c := Client{
		Name:         "Acme",
		Channels:     []string{},
		Axes:         []Axis{},
		EnablePaid:   false,
		PaidChannels: []string{"Google Ads"},
	}
	got, result := NormalizeClient(c)

	// Tắt paid thì kênh quảng cáo cũ không được giữ lại
	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Contains(t, result.Fields, "paidChannels")
	assert.Empty(t, got.PaidChannels)
	assert.NotNil(t, got.PaidChannels)

	_, result = NormalizeClient(got)
	assert.Equal(t, NormalizeOK, result.Outcome)
}

func TestNormalizeClientPaidEnabledGetsDefaults(t *testing.T) {
	c := Client{
		Name:       "Acme",
		Channels:   []string{},
		Axes:       []Axis{},
		EnablePaid: true,
	}
	got, result := NormalizeClient(c)

	// Bật paid mà chưa cấu hình kênh nào: nhận trọn bộ mặc định
	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Contains(t, result.Fields, "paidChannels")
	assert.Equal(t, DefaultPaidChannels, got.PaidChannels)

	_, result = NormalizeClient(got)
	assert.Equal(t, NormalizeOK, result.Outcome)
}

func TestNormalizeClientPaidCustomChannelsKept(t *testing.T) {
	c := Client{
		Name:         "Acme",
		Channels:     []string{},
		Axes:         []Axis{},
		EnablePaid:   true,
		PaidChannels: []string{"TikTok Ads"},
	}
	got, result := NormalizeClient(c)

	assert.Equal(t, NormalizeOK, result.Outcome)
	assert.Equal(t, []string{"TikTok Ads"}, got.PaidChannels)
}

func TestNormalizeClientMissingName(t *testing.T) {
	_, result := NormalizeClient(Client{})
	assert.Equal(t, NormalizeInvalid, result.Outcome)
	assert.False(t, result.IsUsable())
	assert.NotEmpty(t, result.Reason)
}

func TestNormalizeClientAxisColors(t *testing.T) {
	c := Client{
		Name: "Acme",
		Axes: []Axis{
			{ID: "a", Name: "Branding"},
			{ID: "b", Name: "Producto", Color: "#FF0000"},
			{ID: "c", Name: "Comunidad"},
		},
	}
	got, result := NormalizeClient(c)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Contains(t, result.Fields, "axes.color")
	// Trục thiếu màu nhận màu theo vị trí; trục đã có màu giữ nguyên
	assert.Equal(t, AxisColorPalette[0], got.Axes[0].Color)
	assert.Equal(t, "#FF0000", got.Axes[1].Color)
	assert.Equal(t, AxisColorPalette[2], got.Axes[2].Color)
}

func TestNormalizeClientIdempotent(t *testing.T) {
	c := Client{Name: "Acme", Axes: []Axis{{ID: "a", Name: "Branding"}}}
	once, _ := NormalizeClient(c)
	twice, result := NormalizeClient(once)

	assert.Equal(t, NormalizeOK, result.Outcome)
	assert.Equal(t, once, twice)
}

func TestNormalizePost(t *testing.T) {
	clientID := primitive.NewObjectID()

	p := Post{ClientID: clientID, Date: "2024-05-10"}
	got, result := NormalizePost(p)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Equal(t, "2024-05", got.MonthKey)
	assert.Equal(t, StatusNoIniciado, got.Status)
	assert.NotNil(t, got.Channels)

	// Chạy lại trên kết quả: không còn gì để sửa
	_, result = NormalizePost(got)
	assert.Equal(t, NormalizeOK, result.Outcome)
}

func TestNormalizePostMonthKeyMismatch(t *testing.T) {
	p := Post{
		ClientID: primitive.NewObjectID(),
		Date:     "2024-06-01",
		MonthKey: "2024-05", // lệch với date
		Status:   StatusAprobado,
		Channels: []string{"instagram"},
	}
	got, result := NormalizePost(p)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Equal(t, []string{"monthKey"}, result.Fields)
	assert.Equal(t, "2024-06", got.MonthKey)
	assert.Equal(t, StatusAprobado, got.Status)
}

func TestNormalizePostInvalid(t *testing.T) {
	_, result := NormalizePost(Post{Date: "2024-05-10"})
	assert.Equal(t, NormalizeInvalid, result.Outcome)

	_, result = NormalizePost(Post{ClientID: primitive.NewObjectID(), Date: "10/05/2024"})
	assert.Equal(t, NormalizeInvalid, result.Outcome)

	_, result = NormalizePost(Post{ClientID: primitive.NewObjectID()})
	assert.Equal(t, NormalizeInvalid, result.Outcome)
}

func TestNormalizeEventStatusFallback(t *testing.T) {
	e := Event{
		ClientID: primitive.NewObjectID(),
		Date:     "2024-05-10",
		Status:   "published", // giá trị lạ
		Channels: []string{},
	}
	got, result := NormalizeEvent(e)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Contains(t, result.Fields, "status")
	assert.Equal(t, StatusNoIniciado, got.Status)
}

func TestNormalizePaidEndDateClamp(t *testing.T) {
	p := Paid{
		ClientID:           primitive.NewObjectID(),
		StartDate:          "2024-05-10",
		EndDate:            "2024-05-01", // trước startDate
		Status:             StatusEnProceso,
		PaidChannels:       []string{},
		InvestmentCurrency: CurrencyUSD,
	}
	got, result := NormalizePaid(p)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Equal(t, "2024-05-10", got.EndDate)
	assert.Equal(t, "2024-05", got.MonthKey)
	assert.Equal(t, CurrencyUSD, got.InvestmentCurrency)
}

func TestNormalizePaidAmountAndCurrency(t *testing.T) {
	p := Paid{
		ClientID:           primitive.NewObjectID(),
		StartDate:          "2024-05-10",
		EndDate:            "2024-05-12",
		MonthKey:           "2024-05",
		Status:             StatusEnProceso,
		PaidChannels:       []string{},
		InvestmentAmount:   -100,
		InvestmentCurrency: "EUR",
	}
	got, result := NormalizePaid(p)

	assert.Equal(t, NormalizeDefaulted, result.Outcome)
	assert.Equal(t, float64(0), got.InvestmentAmount)
	assert.Equal(t, CurrencyARS, got.InvestmentCurrency)

	_, result = NormalizePaid(got)
	assert.Equal(t, NormalizeOK, result.Outcome)
}

func TestNormalizePaidInvalid(t *testing.T) {
	_, result := NormalizePaid(Paid{StartDate: "2024-05-10"})
	assert.Equal(t, NormalizeInvalid, result.Outcome)

	_, result = NormalizePaid(Paid{ClientID: primitive.NewObjectID(), StartDate: "bad"})
	assert.Equal(t, NormalizeInvalid, result.Outcome)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusAprobado, NormalizeStatus(StatusAprobado))
	assert.Equal(t, StatusNoIniciado, NormalizeStatus(""))
	assert.Equal(t, StatusNoIniciado, NormalizeStatus("unknown"))
}

func TestEffectivePaidChannels(t *testing.T) {
	// Paid tắt: không có kênh nào
	c := Client{Name: "Acme", PaidChannels: []string{"custom"}}
	assert.Nil(t, c.EffectivePaidChannels())

	// Paid bật nhưng chưa cấu hình: dùng danh sách mặc định
	c = Client{Name: "Acme", EnablePaid: true}
	assert.Equal(t, DefaultPaidChannels, c.EffectivePaidChannels())

	// Paid bật và đã cấu hình: dùng danh sách riêng
	c = Client{Name: "Acme", EnablePaid: true, PaidChannels: []string{"custom"}}
	assert.Equal(t, []string{"custom"}, c.EffectivePaidChannels())
}
