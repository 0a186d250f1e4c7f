package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/configs"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/database"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const certificateTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Georgia, serif; text-align: center; padding: 80px; background: #f4f9f4; }
  .frame { border: 12px double #2e7d32; padding: 60px; background: #fff; }
  h1 { color: #2e7d32; letter-spacing: 4px; }
  .name { font-size: 32px; margin: 30px 0; }
  .number { color: #777; font-size: 14px; margin-top: 40px; }
</style>
</head>
<body>
  <div class="frame">
    <h1>CERTIFICATE OF COMPLETION</h1>
    <p>This certifies that</p>
    <p class="name">{{.StudentName}}</p>
    <p>has successfully passed the final exam of</p>
    <h2>{{.CourseTitle}}</h2>
    <p>with a score of {{.Score}}%</p>
    <p>{{.IssuedDate}}</p>
    <p class="number">Certificate No. {{.Number}}</p>
  </div>
</body>
</html>`

// PDFCertificateDelivery renders an issued certificate to PDF, uploads
// it, stores the URL on the record, and emails the student.
type PDFCertificateDelivery struct{}

func (d *PDFCertificateDelivery) Deliver(cert models.Certificate) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", cert.UserID).Error; err != nil {
		log.Printf("🔥 Certificate delivery: failed to load user %s: %v", cert.UserID, err)
		return
	}
	var course models.Course
	if err := database.DB.First(&course, "id = ?", cert.CourseID).Error; err != nil {
		log.Printf("🔥 Certificate delivery: failed to load course %s: %v", cert.CourseID, err)
		return
	}

	htmlData, err := renderCertificateHTML(user.Name, course.Title, cert)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, cert.CertificateNumber)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	if err := database.DB.Model(&models.Certificate{}).
		Where("id = ?", cert.ID).
		Update("pdf_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store certificate URL for %s: %v", cert.CertificateNumber, err)
		return
	}

	emailBody := fmt.Sprintf(
		"<h1>Congratulations, %s!</h1><p>You passed the final exam of <b>%s</b> with %d%%.</p><p>Your certificate number is <b>%s</b>.</p><p><a href='%s'>Download your certificate</a></p>",
		user.Name, course.Title, cert.ExamScore, cert.CertificateNumber, uploadURL,
	)
	go notifications.SendEmail(user.Name, user.Email, "Your EcoLearn Certificate", emailBody)

	log.Printf("✅ Delivered certificate %s to %s", cert.CertificateNumber, user.Email)
}

func renderCertificateHTML(studentName, courseTitle string, cert models.Certificate) (string, error) {
	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName string
		CourseTitle string
		Score       int
		Number      string
		IssuedDate  string
	}{
		StudentName: studentName,
		CourseTitle: courseTitle,
		Score:       cert.ExamScore,
		Number:      cert.CertificateNumber,
		IssuedDate:  time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, certificateNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s", certificateNumber),
		Folder:       "ecolearn_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
