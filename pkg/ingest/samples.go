package ingest

// Sample CSV fixtures matching the column conventions of the real connector
// exports. Used by demos and by the serve endpoint's template download.

// SamplePlacementCSV returns a small placement export with the full CRM
// column set.
func SamplePlacementCSV() string {
	return `Client,Placement Client Local ID,Placement Name,Coverage,Product Line,Carrier Group,Placement Created Date/Time,Placement Created By,Placement Created By (ID),Response Received Date,Placement Specialist,Placement Renewing Status,Placement Status,Declination Reason,Placement Id,Placement Effective Date,Placement Expiry Date,Incumbent Indicator,Participation Status Code,Placement Client Segment Code,Placement Renewing Status Code,Limit,Coverage Premium Amount,Tria Premium,Total Premium,Comission %,Comission Amount,Participation Percentage,Carrier Group Local ID,Production Code,Submission Sent Date,Program Product Local Code Text,Approach Non Admitted Market Indicator,Carrier Integration
Global Technologies,SCR-0b810b6f4c20,SCR-8d9f15ee3a3c,General Liability,Energy and Power,Eastern Risk Management,2025-04-24T06:37:09,Kimberly Jackson,SCR-c54656cdfecb,29/07/25,Mary Jackson,In progress,Quote,-,SCR-76fd0b40a1cb,30/09/25,30/09/26,N,QUOTATION_STATUS_QUOTED,CLIENT_SEGMENT_RISK_MGMT,RENEWAL_STATUS_IN_PROGRESS,3558700,65304.28,1881.62,67311.79,8,5760.41,100,0498,PRODUCTION_TYPE_NEW,-,SCR-262eac00ad8f,N,Not Applicable
Harbor Logistics,SCR-1f4a2c88be01,SCR-40cc91d07712,Property,Marine and Transport,Northgate Underwriters,2025-05-12T11:02:44,Daniel Reyes,SCR-88a1040cc3d2,02/08/25,Priya Nair,In progress,Submitted,-,SCR-90aa17e5b3fd,15/10/25,15/10/26,Y,QUOTATION_STATUS_PENDING,CLIENT_SEGMENT_MIDDLE_MKT,RENEWAL_STATUS_IN_PROGRESS,1200000,28750.00,0,29950.50,12,3594.06,100,0231,PRODUCTION_TYPE_RENEWAL,05/07/25,SCR-7b3c55f09ae1,N,Not Applicable`
}

// SampleEmailCSV returns a small email-connector export with pre-labelled
// sentiment.
func SampleEmailCSV() string {
	return `EmailId,Subject,ClientName,ReceivedAt,PolicyId,Summary,Sentiment,ThreadCount,SourceLink,SenderEmail
EM-501,Renewal - Need Updated Proposal,Alpha Manufacturing Ltd,2025-01-14 09:17 AM,POL-8841,Client urgently requesting renewal quote; mentions competitor pricing,negative,7,https://outlook.office.com/mail/em501,contact@alphamfg.com
EM-504,Appreciation + Next Cycle,Orion Tech Services,2025-01-04 06:40 PM,POL-9005,Client appreciated last renewal speed and pricing,positive,3,https://outlook.office.com/mail/em504,buyer@oriontech.com
EM-507,Pending Quote Feedback,Zenith Manufacturing,2025-02-03 11:45 AM,POL-9234,Awaiting client feedback on three carrier quotes,neutral,6,https://outlook.office.com/mail/em507,procurement@zenithmfg.com`
}

// SampleCalendarCSV returns a small calendar-connector export.
func SampleCalendarCSV() string {
	return `EventId,Title,ClientName,MeetingDate,PolicyId,MeetingNotes,Participants,SourceLink
EVT-101,Renewal strategy review,Alpha Manufacturing Ltd,2025-02-10,POL-8841,Walk through renewal options before expiry,anna@brokerage.com;contact@alphamfg.com,https://calendar.example.com/evt101
EVT-102,Quarterly check-in,Orion Tech Services,2025-03-02,POL-9005,Standing relationship call,buyer@oriontech.com,https://calendar.example.com/evt102`
}
