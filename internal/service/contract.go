package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"pujcovna-backend/internal/utils"
)

// LessorInfo is the operator's identity block printed on every contract.
type LessorInfo struct {
	Name        string
	Address     string
	City        string
	ICO         string
	Phone       string
	Email       string
	BankAccount string
}

type pdfContractGenerator struct {
	lessor LessorInfo
}

func NewContractGenerator(lessor LessorInfo) ContractGenerator {
	return &pdfContractGenerator{lessor: lessor}
}

// spdPayload builds a Short Payment Descriptor string, the QR payment
// format Czech banking apps scan.
func spdPayload(account string, amount int32, variableSymbol, message string) string {
	return fmt.Sprintf("SPD*1.0*ACC:%s*AM:%d*CC:CZK*X-VS:%s*MSG:%s",
		account, amount, variableSymbol, message)
}

func (g *pdfContractGenerator) Generate(data ContractData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Built-in fonts only cover cp1252; translate Czech text to cp1250 so
	// diacritics render.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")

	var totalPrice, totalDeposit int32
	for _, it := range data.Items {
		totalPrice += it.TotalPrice
		totalDeposit += it.Deposit * it.Quantity
	}
	grandTotal := totalPrice + totalDeposit

	// Header.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Smlouva o pronájmu vybavení"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Číslo smlouvy: %s", data.InvoiceNumber)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Party blocks, lessor left and lessee right.
	colW := (210.0 - 30.0) / 2
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colW, 6, tr("Pronajímatel"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		g.lessor.Name,
		g.lessor.Address,
		g.lessor.City,
		"IČO: " + g.lessor.ICO,
		"Tel: " + g.lessor.Phone,
		g.lessor.Email,
	} {
		pdf.CellFormat(colW, 5, tr(line), "", 1, "L", false, 0, "")
	}
	bottomLeft := pdf.GetY()

	pdf.SetXY(15+colW, top)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colW, 6, tr("Nájemce"), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		data.CustomerName,
		data.CustomerAddress,
		"Tel: " + data.CustomerPhone,
		data.CustomerEmail,
	} {
		pdf.SetX(15 + colW)
		pdf.CellFormat(colW, 5, tr(line), "", 1, "L", false, 0, "")
	}
	if pdf.GetY() < bottomLeft {
		pdf.SetY(bottomLeft)
	}
	pdf.Ln(4)

	// Rental period and pickup.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr("Doba pronájmu"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Od %s do %s (včetně)", data.DateFrom, data.DateTo)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Místo vyzvednutí: "+pickupLabel(data.PickupLocation)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items table.
	g.renderItemsTable(pdf, tr, data.Items)

	// Totals.
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Půjčovné celkem: %d Kč", totalPrice)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Vratná záloha celkem: %d Kč", totalDeposit)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Celkem k úhradě: %d Kč", grandTotal)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	if err := g.renderPaymentQR(pdf, tr, data, grandTotal); err != nil {
		return nil, err
	}

	g.renderSignatures(pdf, tr)
	g.renderTerms(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *pdfContractGenerator) renderItemsTable(pdf *fpdf.Fpdf, tr func(string) string, items []ContractItem) {
	headers := []string{"Vybavení", "Ks", "Cena/den", "Dnů", "Půjčovné", "Záloha"}
	widths := []float64{68, 13, 26, 13, 29, 30}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	aligns := []string{"L", "C", "R", "C", "R", "R"}

	drawHeader()
	for _, it := range items {
		if pdf.GetY() > 250 {
			pdf.AddPage()
			drawHeader()
		}
		for i, cell := range itemRow(it) {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// itemRow formats one contract line into the table's six cells: name,
// quantity, price per day, day count, rental total, and the deposit scaled
// by quantity.
func itemRow(it ContractItem) []string {
	name := it.Name
	if r := []rune(name); len(r) > 40 {
		name = string(r[:40])
	}
	return []string{
		name,
		fmt.Sprintf("%d", it.Quantity),
		fmt.Sprintf("%d Kč", it.DailyPrice),
		fmt.Sprintf("%d", it.Days),
		fmt.Sprintf("%d Kč", it.TotalPrice),
		fmt.Sprintf("%d Kč", it.Deposit*it.Quantity),
	}
}

func (g *pdfContractGenerator) renderPaymentQR(pdf *fpdf.Fpdf, tr func(string) string, data ContractData, amount int32) error {
	vs := utils.PaymentSymbol(data.InvoiceNumber)
	payload := spdPayload(g.lessor.BankAccount, amount, vs,
		"Pronajem vybaveni "+data.OrderNumber)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode payment qr: %w", err)
	}

	if pdf.GetY() > 215 {
		pdf.AddPage()
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(png))
	y := pdf.GetY()
	pdf.ImageOptions("payment-qr", 15, y, 40, 40, false, opts, 0, "")

	pdf.SetXY(60, y+4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, tr("QR platba"), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(60)
	pdf.CellFormat(0, 5, tr("Účet: "+g.lessor.BankAccount), "", 2, "L", false, 0, "")
	pdf.SetX(60)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Částka: %d Kč", amount)), "", 2, "L", false, 0, "")
	pdf.SetX(60)
	pdf.CellFormat(0, 5, tr("Variabilní symbol: "+vs), "", 2, "L", false, 0, "")

	pdf.SetY(y + 44)
	return nil
}

func (g *pdfContractGenerator) renderSignatures(pdf *fpdf.Fpdf, tr func(string) string) {
	if pdf.GetY() > 235 {
		pdf.AddPage()
	}
	pdf.Ln(8)
	colW := (210.0 - 30.0) / 2
	y := pdf.GetY()

	pdf.Line(20, y, 20+colW-15, y)
	pdf.Line(25+colW, y, 25+colW+colW-15, y)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(15, y+1)
	pdf.CellFormat(colW, 5, tr("Podpis pronajímatele"), "", 0, "C", false, 0, "")
	pdf.SetXY(15+colW, y+1)
	pdf.CellFormat(colW, 5, tr("Podpis nájemce"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Potvrzení o vrácení"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr("Datum vrácení: _______________     Stav vybavení: _______________"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Záloha vrácena dne: _______________     Podpis: _______________"), "", 1, "L", false, 0, "")
}

func (g *pdfContractGenerator) renderTerms(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.Ln(6)
	if pdf.GetY() > 230 {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Podmínky pronájmu"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	terms := []string{
		"1. Nájemce přebírá vybavení ve stavu způsobilém k obvyklému užívání a zavazuje se jej v tomto stavu vrátit.",
		"2. Záloha je vratná při vrácení nepoškozeného vybavení v dohodnutém termínu.",
		"3. Při poškození nebo ztrátě vybavení se záloha použije na úhradu škody.",
		"4. Při pozdním vrácení se účtuje půjčovné dle sazby za každý započatý den.",
		"5. Nájemce není oprávněn přenechat vybavení k užívání třetí osobě.",
	}
	for _, t := range terms {
		pdf.MultiCell(0, 4, tr(t), "", "L", false)
	}
}

func pickupLabel(location string) string {
	switch strings.ToLower(location) {
	case "brno":
		return "Brno"
	case "bilovice":
		return "Bílovice nad Svitavou"
	case "olomouc":
		return "Olomouc"
	default:
		return location
	}
}
