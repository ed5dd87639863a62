package checkout

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"mime"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeResult is where a checkout starts. Reset is set when a resume link
// pointed at an order that no longer exists.
type ResumeResult struct {
	Data    entities.OrderData
	OrderID string
	Step    Step
	Reset   bool
}

// ResumeLoader rebuilds checkout state from a resume link or from pre-fill
// query parameters.
type ResumeLoader struct {
	orders    OrderFetcher
	publicURL func(path string) string
	log       *zap.Logger
}

// publicURL may be nil.
func NewResumeLoader(orders OrderFetcher, publicURL func(string) string, log *zap.Logger) *ResumeLoader {
	return &ResumeLoader{orders: orders, publicURL: publicURL, log: logger.OrNop(log)}
}

// Load never fails: a dead or broken resume link falls back to a fresh
// order.
func (l *ResumeLoader) Load(ctx context.Context, params url.Values, base entities.OrderData) ResumeResult {
	if orderID := strings.TrimSpace(params.Get("orderId")); orderID != "" {
		return l.loadOrder(ctx, orderID, params)
	}

	data := base.Clone()
	applyPrefill(&data, params)
	step, ok := parseStep(params.Get("step"))
	if !ok {
		step = StepCustomerInfo
	}
	return ResumeResult{Data: data, Step: step}
}

func (l *ResumeLoader) loadOrder(ctx context.Context, orderID string, params url.Values) ResumeResult {
	rec, err := l.orders.GetOrder(ctx, orderID)
	if err != nil {
		l.log.Warn("[checkout][resume] order fetch failed", zap.String("order_id", orderID), zap.Error(err))
		rec = nil
	}
	if rec == nil || rec.ID == "" {
		l.log.Info("[checkout][resume] order not found, starting fresh", zap.String("order_id", orderID))
		return ResumeResult{Data: entities.NewOrderData(), Step: StepCustomerInfo, Reset: true}
	}

	step, ok := parseStep(params.Get("step"))
	if !ok {
		step = stepForStatus(rec.Status)
	}
	return ResumeResult{Data: l.orderDataFromRecord(*rec), OrderID: rec.ID, Step: step}
}

func stepForStatus(status entities.OrderStatus) Step {
	switch status {
	case entities.OrderStatusPendingPayment:
		return StepPayment
	case entities.OrderStatusInProgress:
		return StepServiceAndDocuments
	}
	return StepCustomerInfo
}

// orderDataFromRecord is the only place a backend record becomes OrderData.
func (l *ResumeLoader) orderDataFromRecord(rec entities.OrderRecord) entities.OrderData {
	data := entities.NewOrderData()
	data.CustomerInfo = entities.CustomerInfo{
		Email:     strings.TrimSpace(rec.Customer.Email),
		FirstName: strings.TrimSpace(rec.Customer.FirstName),
		LastName:  strings.TrimSpace(rec.Customer.LastName),
		Phone:     strings.TrimSpace(rec.Customer.Phone),
		Company:   strings.TrimSpace(rec.Customer.Company),
	}
	data.Services = entities.ServiceInfoFromRecord(rec.Services)

	for _, p := range rec.DocumentPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		doc := entities.NewPendingDocument(uuid.NewString(), displayName(p), 0, mime.TypeByExtension(path.Ext(p)))
		doc.Status = entities.DocumentStatusSuccess
		full := 100
		doc.Progress = &full
		doc.Path = p
		if l.publicURL != nil {
			doc.URL = l.publicURL(p)
		}
		data.Documents = append(data.Documents, doc)
	}
	return data
}

// displayName strips the "<millis>-<rand>-" prefix the upload manager adds.
func displayName(p string) string {
	name := path.Base(p)
	parts := strings.SplitN(name, "-", 3)
	if len(parts) == 3 {
		if _, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
			return parts[2]
		}
	}
	return name
}

func parseStep(raw string) (Step, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	s := Step(n)
	return s, s.Valid()
}

// applyPrefill merges present, non-empty parameters only.
func applyPrefill(data *entities.OrderData, params url.Values) {
	get := func(key string) (string, bool) {
		v := strings.TrimSpace(params.Get(key))
		return v, v != ""
	}

	c := &data.CustomerInfo
	for key, dst := range map[string]*string{
		"firstName": &c.FirstName,
		"lastName":  &c.LastName,
		"email":     &c.Email,
		"phone":     &c.Phone,
		"company":   &c.Company,
	} {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	s := &data.Services
	if v, ok := get("urgency"); ok && entities.Urgency(v).Valid() {
		s.Urgency = entities.Urgency(v)
	}
	if v, ok := get("delivery"); ok && entities.DeliveryType(v).Valid() {
		s.DeliveryType = entities.DeliveryType(v)
	}
	if v, ok := get("specialInstructions"); ok {
		s.SpecialInstructions = v
	}

	evaluationHint := false
	if v, ok := get("evaluationType"); ok && entities.EvaluationType(v).Valid() {
		s.EvaluationType = entities.EvaluationType(v)
		evaluationHint = true
	}
	translationHint := false
	if v, ok := get("languageFrom"); ok {
		s.LanguageFrom = v
		translationHint = true
	}
	if v, ok := get("languageTo"); ok {
		s.LanguageTo = v
		translationHint = true
	}
	if v, ok := get("pageCount"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			s.PageCount = n
			translationHint = true
		}
	}

	if v, ok := get("service"); ok {
		if t := entities.ServiceType(v); t.Valid() {
			s.Type = t
		}
		return
	}
	switch {
	case evaluationHint:
		s.Type = entities.ServiceTypeEvaluation
	case translationHint:
		s.Type = entities.ServiceTypeTranslation
	}
}
